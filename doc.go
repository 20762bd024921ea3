// Command notegram is a Telegram bot that files short news items into a
// directory of markdown notes.
//
// Send the bot a piece of text, a picture, or a picture with a caption. The
// bot offers two choices via inline buttons: append the item to an existing
// note, or create a new one. Picking "existing" lists every ".md" file at the
// top level of the notes directory; picking "new" asks for a note name
// (without the ".md" extension). New notes start with a level-1 heading equal
// to the name. Pictures are downloaded into an "attachments" subdirectory and
// referenced from the note with a relative markdown image link.
//
// Notegram looks for a configuration file at "$HOME/lib/notegram/config". It
// is in JSON format and is described in config.go. An alternative
// configuration file can be specified with the -config command line flag. The
// configuration must contain at least the bot token (ask @BotFather) and the
// notes directory.
//
// Conversation state is persisted in a Bolt database, by default at
// "$HOME/lib/notegram/sessions.bolt", so a half-finished conversation
// survives a restart of the bot. Logs go to "$HOME/lib/notegram/log" unless
// configured otherwise.
//
// Send /cancel at any point to throw away the staged item and start over.
package main // import "github.com/wirenic/notegram"
