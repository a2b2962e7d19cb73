// Package mail delivers the Secret Santa letters: an SMTP sender built on
// gomail, plain-text and HTML letter rendering with an embedded festive GIF,
// a dispatcher that walks the pairing one giver at a time, and IMAP
// housekeeping that removes the sent letters from the outgoing mailbox so
// nobody can read the assignments afterwards.
package mail
