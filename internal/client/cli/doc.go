// Package cli implements credctl, a one-shot command-line front end for the
// credvault CredentialService.
//
//	credctl [-a addr] [-timeout d] register <identity>
//	credctl [-a addr] [-timeout d] login <identity>
//	credctl [-a addr] [-timeout d] passwd <identity>
//
// Passwords are always read from the terminal without echo. A missing
// identity is prompted for.
package cli
