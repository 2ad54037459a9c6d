package core

import "strings"

// NFTRecord is one item of the backend's batch metadata reply
type NFTRecord struct {
	ID          string `json:"id"`
	URI         string `json:"URI"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Metadata resolves display fields for the record. The backend usually
// returns a decoded image URL in URI; a raw hex blob is decoded instead.
func (r NFTRecord) Metadata() NFTMetadata {
	if isHex(r.URI) {
		meta := DecodeURI(r.URI)
		if r.Name != "" {
			meta.Name = r.Name
		}
		if r.Description != "" {
			meta.Description = r.Description
		}
		return meta
	}
	return NFTMetadata{Name: r.Name, Description: r.Description, Image: r.URI}
}

// MarketOffer is a sell offer annotated for display
type MarketOffer struct {
	SellOffer
	Price     string       `json:"price"`
	CanAccept bool         `json:"can_accept"`
	NFT       *NFTMetadata `json:"nft,omitempty"`
}

// Marketplace is the partitioned view of all active offers
type Marketplace struct {
	Mine   []MarketOffer `json:"mine"`
	Others []MarketOffer `json:"others"`
}

// BuildMarketplace partitions offers for the user and joins NFT metadata by token ID
func BuildMarketplace(offers []SellOffer, records []NFTRecord, id Identity) Marketplace {
	meta := make(map[string]NFTMetadata, len(records))
	for _, r := range records {
		meta[r.ID] = r.Metadata()
	}

	mine, others := PartitionOffers(offers, id)
	return Marketplace{
		Mine:   annotate(mine, meta, id),
		Others: annotate(others, meta, id),
	}
}

func annotate(offers []SellOffer, meta map[string]NFTMetadata, id Identity) []MarketOffer {
	out := make([]MarketOffer, 0, len(offers))
	for _, o := range offers {
		mo := MarketOffer{
			SellOffer: o,
			Price:     FormatDrops(o.Amount),
			CanAccept: o.CanAccept(id),
		}
		if m, ok := meta[o.NFTokenID]; ok {
			m := m
			mo.NFT = &m
		}
		out = append(out, mo)
	}
	return out
}

func isHex(s string) bool {
	if s == "" || len(s)%2 != 0 {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool {
		return !(('0' <= r && r <= '9') || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F'))
	}) < 0
}
