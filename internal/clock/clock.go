package clock

import "time"

// NowFunc supplies the wall clock used for run timestamps.  Tests override it
// to make elapsed-time assertions deterministic.
var NowFunc = time.Now

// Now reads the current time through NowFunc.
func Now() time.Time { return NowFunc() }
