// Global database config.
package config

// Name of the database.
const DBName = "rowdb"

// Prompt printed by REPL.
const Prompt = DBName + "> "

// Return prompt if requested, else "".
func GetPrompt(flag bool) string {
	if flag {
		return Prompt
	}
	return ""
}
