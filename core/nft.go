package core

import (
	"encoding/json"
	"strings"
)

// UntitledNFT is shown when a URI yields nothing displayable
const UntitledNFT = "Untitled NFT"

// Asset is an NFT held by an account
type Asset struct {
	TokenID string      `json:"nftoken_id"`
	URI     string      `json:"uri"`
	Issuer  string      `json:"issuer,omitempty"`
	Owner   string      `json:"owner,omitempty"`
	Taxon   int64       `json:"taxon"`
	Serial  int64       `json:"serial"`
	Meta    NFTMetadata `json:"metadata"`
}

// NFTMetadata is the display information carried in an NFT URI
type NFTMetadata struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

// DisplayName returns the name, or a placeholder when it is blank
func (m NFTMetadata) DisplayName() string {
	if strings.TrimSpace(m.Name) == "" {
		return UntitledNFT
	}
	return m.Name
}

// DecodeURI recovers metadata from a hex encoded URI field. It never fails:
// malformed hex is skipped pair by pair and a payload that is not a JSON
// object becomes the name as-is.
func DecodeURI(hexURI string) NFTMetadata {
	decoded := DecodeHexString(hexURI)

	var fields map[string]any
	if err := json.Unmarshal([]byte(decoded), &fields); err != nil || fields == nil {
		return NFTMetadata{Name: decoded}
	}

	return NFTMetadata{
		Name:        stringField(fields, "name"),
		Description: stringField(fields, "description"),
		Image:       stringField(fields, "image"),
	}
}

// DecodeHexString decodes byte pairs into a UTF-8 string. Invalid pairs and
// a trailing odd nibble are dropped; invalid UTF-8 is replaced.
func DecodeHexString(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X") {
		s = s[2:]
	}

	out := make([]byte, 0, len(s)/2)
	for i := 0; i+1 < len(s); i += 2 {
		hi, ok1 := fromHexChar(s[i])
		lo, ok2 := fromHexChar(s[i+1])
		if !ok1 || !ok2 {
			continue
		}
		out = append(out, hi<<4|lo)
	}

	return strings.ToValidUTF8(string(out), "�")
}

func fromHexChar(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func stringField(fields map[string]any, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}
