package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile string
	Profile    string
	DryRun     bool
	Dir        string
	Date       string
}
