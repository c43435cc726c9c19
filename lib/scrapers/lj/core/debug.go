package core

import "ljexport/lib/util/restyutil"

var debugOutput restyutil.Output

// SetDebugOutput turns on raw exchange recording for clients created
// afterwards. Call before NewClient.
func SetDebugOutput(out restyutil.Output) {
	debugOutput = out
}
