// Package cli provides the interactive MotoSegura command-line client.
//
// The App restores the persisted session, then runs a read–eval–print loop
// over the backend: browsing and searching medical records and motorcycles,
// creating and editing them, QR and photo handling, admin deletes and XLSX
// export, and connection diagnostics.
//
// Commands that need a signed-in user or an administrator are gated by the
// session guards; a rate-limited call starts a countdown shown in the prompt.
// See App, runREPL and Countdown for details.
package cli
