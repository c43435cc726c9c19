package main

import (
	"ljexport/cmd/ljexport/commands"
	"ljexport/lib/telemetry"
	"ljexport/lib/util/serviceutil"
)

func main() {
	ctx := serviceutil.SignalContext()
	telemetry.SetupFromEnv(ctx, "ljexport")
	telemetry.InitSlog(false)
	commands.ExecuteContext(ctx)
}
