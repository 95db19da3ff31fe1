package utils

import "github.com/bwmarrin/discordgo"

// FindOption searches options, drilling into subcommands, for name
func FindOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) *discordgo.ApplicationCommandInteractionDataOption {
	for len(options) > 0 {
		for _, opt := range options {
			if opt.Name == name {
				return opt
			}
		}

		// If the first option has sub-options (it's a subcommand group or subcommand), drill down
		if len(options[0].Options) == 0 {
			break
		}
		options = options[0].Options
	}

	return nil
}

// StringOption safely retrieves a string option value by name
func StringOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	opt := FindOption(options, name)
	if opt == nil || opt.Type != discordgo.ApplicationCommandOptionString {
		return ""
	}
	return opt.StringValue()
}

// IntOption retrieves an integer option and whether it was supplied
func IntOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) (int64, bool) {
	opt := FindOption(options, name)
	if opt == nil || opt.Type != discordgo.ApplicationCommandOptionInteger {
		return 0, false
	}
	return opt.IntValue(), true
}

// UserOption retrieves the id of a user option, empty when missing
func UserOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	opt := FindOption(options, name)
	if opt == nil || opt.Type != discordgo.ApplicationCommandOptionUser {
		return ""
	}
	// without a session only the id is filled in
	return opt.UserValue(nil).ID
}

// InteractionUserID returns the invoking user in guilds and DMs
func InteractionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
