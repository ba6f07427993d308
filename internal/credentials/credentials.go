// Package credentials handles authentication credentials for SMB connections.
package credentials

import (
	"encoding/hex"
	"regexp"
	"strings"
)

// Empty LM and NT hash values, used to pad a half-specified hash pair.
const (
	emptyLMHash = "aad3b435b51404eeaad3b435b51404ee"
	emptyNTHash = "31d6cfe0d16ae931b73c59d7e0c089c0"
)

// Credentials holds authentication information for SMB connections.
type Credentials struct {
	Domain   string
	Username string
	Password string

	// Hashes for pass-the-hash authentication
	NTHex string
	NTRaw []byte
	LMHex string
	LMRaw []byte
}

// NewCredentials creates a new Credentials instance. hashes is the "LM:NT"
// form accepted by SetHashes and may be empty.
func NewCredentials(domain, username, password, hashes string) *Credentials {
	c := &Credentials{
		Domain:   domain,
		Username: username,
		Password: password,
	}
	c.SetHashes(hashes)
	return c
}

// SetHashes parses and sets the LM and NT hashes from a string in "LM:NT" format.
func (c *Credentials) SetHashes(hashes string) {
	c.LMHex = ""
	c.LMRaw = nil
	c.NTHex = ""
	c.NTRaw = nil

	if hashes == "" {
		return
	}

	lm, nt := ParseLMNTHashes(hashes)
	c.LMHex = lm
	c.NTHex = nt

	if c.LMHex != "" {
		c.LMRaw, _ = hex.DecodeString(c.LMHex)
	}
	if c.NTHex != "" {
		c.NTRaw, _ = hex.DecodeString(c.NTHex)
	}
}

// IsAnonymous returns true if no username is provided.
func (c *Credentials) IsAnonymous() bool {
	return c.Username == ""
}

// HasHashes returns true if an NT hash is available.
func (c *Credentials) HasHashes() bool {
	return c.NTHex != "" && len(c.NTRaw) > 0
}

// ParseLMNTHashes parses a string containing LM and NT hash values.
// The format is "LM:NT", ":NT" or "LM:". A missing half is replaced with
// the corresponding empty hash.
func ParseLMNTHashes(hashString string) (lmHash, ntHash string) {
	if hashString == "" {
		return "", ""
	}

	pattern := regexp.MustCompile(`^([0-9a-f]{32})?(:)?([0-9a-f]{32})?$`)
	matches := pattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(hashString)))
	if matches == nil {
		return "", ""
	}

	mLMHash := matches[1]
	mSep := matches[2]
	mNTHash := matches[3]

	if mLMHash == "" && mSep == "" && mNTHash == "" {
		return "", ""
	}

	if mLMHash == "" && mNTHash != "" {
		return emptyLMHash, mNTHash
	}
	if mLMHash != "" && mNTHash == "" {
		return mLMHash, emptyNTHash
	}

	return mLMHash, mNTHash
}

// String returns a string representation of the credentials.
func (c *Credentials) String() string {
	return "<Credentials for '" + c.Domain + "\\" + c.Username + "'>"
}
