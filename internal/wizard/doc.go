// Package wizard implements the interactive setup for controlroom.
//
// The wizard has two screens:
//   - Discovery: browse for feed services over mDNS or type a feed URL
//   - Settings: edit the feed URL, poll interval and remote listen address
//
// Saving validates the edited configuration and writes it to the config
// file. Built on Bubble Tea with bubbles/list, bubbles/textinput,
// bubbles/progress and bubbles/spinner.
//
// # Usage Example
//
//	app := wizard.New(cfg, path, nil)
//	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
//	    return err
//	}
package wizard
