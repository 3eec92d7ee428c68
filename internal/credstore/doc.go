// Package credstore implements the secure credential store: small named
// secrets (tokens, user id, tag) persisted in the local sqlite database,
// sealed at rest with AES-256-GCM under a device-bound key.
//
// The sealing key is derived from a keyfile created on first run with mode
// 0600. The keyfile never leaves the device and is excluded from any backup
// or sync surface by living next to the client database; secrets sealed
// under it cannot be opened on another device. This is a security floor,
// not a caching choice.
package credstore
