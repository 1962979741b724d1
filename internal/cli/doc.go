// Package cli wires the poplingo commands. It handles flag parsing,
// configuration through viper and .env files, and builds the notebook,
// content client and processor each command needs.
package cli
