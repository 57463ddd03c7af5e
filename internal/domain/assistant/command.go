package assistant

// Command is a reserved control token recognized by exact match.
type Command string

const (
	CommandNone   Command = ""
	CommandMenu   Command = "MENU"
	CommandStatus Command = "STATUS"
	CommandKB     Command = "KB"
	CommandClear  Command = "CLEAR"
	CommandReset  Command = "RESET"
	CommandBack   Command = "BACK"
	CommandCancel Command = "CANCEL"
	CommandMore   Command = "MORE"
)

// MatchCommand maps exact reserved tokens to commands. Matching is string
// equality after normalization only; "menu please" is not a command.
func MatchCommand(text string) Command {
	switch Normalize(text) {
	case "menu", "help", "?":
		return CommandMenu
	case "/status":
		return CommandStatus
	case "/kb":
		return CommandKB
	case "/clear":
		return CommandClear
	case "/reset":
		return CommandReset
	case "back":
		return CommandBack
	case "cancel":
		return CommandCancel
	case "more":
		return CommandMore
	}
	return CommandNone
}
