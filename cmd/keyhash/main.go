// Package main provides a CLI for producing API keys and the bcrypt hashes
// accepted by API_KEY_HASH.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"applicant-records/pkg/secrets"
)

type keyOutput struct {
	Key  string            `json:"key,omitempty"`
	Hash string            `json:"hash"`
	Env  map[string]string `json:"env"`
}

func main() {
	generateCmd := flag.NewFlagSet("generate", flag.ExitOnError)
	generateJSON := generateCmd.Bool("json", false, "Output as JSON")
	generateCost := generateCmd.Int("cost", secrets.DefaultCost, "bcrypt cost")

	hashCmd := flag.NewFlagSet("hash", flag.ExitOnError)
	hashKey := hashCmd.String("key", "", "API key to hash (required)")
	hashJSON := hashCmd.Bool("json", false, "Output as JSON")
	hashCost := hashCmd.Int("cost", secrets.DefaultCost, "bcrypt cost")

	verifyCmd := flag.NewFlagSet("verify", flag.ExitOnError)
	verifyKey := verifyCmd.String("key", "", "API key to check (required)")
	verifyHash := verifyCmd.String("hash", "", "bcrypt hash to check against (required)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "generate":
		_ = generateCmd.Parse(os.Args[2:])
		key, err := secrets.GenerateKey()
		exitOnErr(err)
		hash, err := secrets.HashKey(key, *generateCost)
		exitOnErr(err)
		emit(keyOutput{Key: key, Hash: hash, Env: envFor(hash)}, *generateJSON)

	case "hash":
		_ = hashCmd.Parse(os.Args[2:])
		if *hashKey == "" {
			fmt.Fprintln(os.Stderr, "error: -key is required")
			hashCmd.Usage()
			os.Exit(1)
		}
		hash, err := secrets.HashKey(*hashKey, *hashCost)
		exitOnErr(err)
		emit(keyOutput{Hash: hash, Env: envFor(hash)}, *hashJSON)

	case "verify":
		_ = verifyCmd.Parse(os.Args[2:])
		if *verifyKey == "" || *verifyHash == "" {
			fmt.Fprintln(os.Stderr, "error: -key and -hash are required")
			verifyCmd.Usage()
			os.Exit(1)
		}
		if !secrets.IsHash(*verifyHash) {
			fmt.Fprintln(os.Stderr, "error: -hash is not a bcrypt hash")
			os.Exit(1)
		}
		if err := secrets.VerifyKey(*verifyKey, *verifyHash); err != nil {
			fmt.Fprintf(os.Stderr, "no match: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("match")

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func envFor(hash string) map[string]string {
	return map[string]string{"API_KEY_HASH": hash}
}

func emit(out keyOutput, asJSON bool) {
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
		return
	}
	if out.Key != "" {
		fmt.Printf("key:  %s\n", out.Key)
	}
	fmt.Printf("hash: %s\n\n", out.Hash)
	// Single quotes keep the shell from expanding the $ segments of the hash.
	fmt.Printf("export API_KEY_HASH='%s'\n", out.Hash)
}

func exitOnErr(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`keyhash - API key helper for applicant-records

Usage:
  keyhash <command> [flags]

Commands:
  generate   Create a random API key and its bcrypt hash
  hash       Hash an existing API key for API_KEY_HASH
  verify     Check an API key against a hash

Examples:
  keyhash generate
  keyhash hash -key "my-shared-key" -cost 12
  keyhash verify -key "my-shared-key" -hash '$2a$10$...'

Clients send the key as the Basic auth username; the password is ignored.`)
}
