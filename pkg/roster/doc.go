// Package roster loads and validates the Secret Santa participant list,
// collecting every fault in the input at once (duplicate names, missing or
// malformed email addresses) so the operator can fix the file in one pass.
package roster
