// Package ui provides one-shot terminal output for the controlroom CLI.
//
// Subcommands such as "layout", "feed poll" and "config show" print a styled
// header, a body and a result box, then exit. Nothing here is interactive
// apart from Confirm; the live display lives in package display.
//
//	p := ui.NewPrinter(os.Stdout)
//	p.PrintHeader("Layout", "controlroom layout 7", map[string]string{"Screens": "7"})
//	p.Println(ui.RenderPlan(plan, graph))
//	p.PrintSuccess("Plan computed", map[string]string{"Mode": string(plan.Mode)})
//
// Logging is controlled by CONTROLROOM_LOG_LEVEL. Unset, zap stays silent
// and only the curated output is shown.
package ui
