package core

import "strings"

// OfferStatus is the lifecycle state of a sell offer as reported by the backend
type OfferStatus string

const (
	OfferActive   OfferStatus = "active"
	OfferAccepted OfferStatus = "accepted"
	OfferCanceled OfferStatus = "canceled"
)

// SellOffer is a ledger sell offer for one NFT
type SellOffer struct {
	ID             int64       `json:"id"`
	NFTokenID      string      `json:"nftoken_id"`
	Seller         int64       `json:"seller"`
	SellerUsername string      `json:"seller_username"`
	Amount         string      `json:"amount"` // drops
	Destination    *string     `json:"destination"`
	OfferIndex     string      `json:"offer_index"`
	CreatedAt      string      `json:"created_at"`
	Status         OfferStatus `json:"status"`
}

// Identity is the current user as far as offer matching is concerned
type Identity struct {
	Username string
	Address  string
}

// IsActive reports whether the offer is still available
func (o SellOffer) IsActive() bool {
	return o.Status == OfferActive
}

// Involves reports whether the user is the seller or the destination of the offer
func (o SellOffer) Involves(id Identity) bool {
	if o.SellerUsername == id.Username {
		return true
	}
	return o.Destination != nil && *o.Destination != "" && *o.Destination == id.Address
}

// CanAccept reports whether the user may accept the offer. Sellers cannot
// accept their own offers.
func (o SellOffer) CanAccept(id Identity) bool {
	return !strings.EqualFold(o.SellerUsername, id.Username)
}

// PartitionOffers splits the active offers into those involving the user and
// everything else. Offers that are no longer active appear in neither.
func PartitionOffers(offers []SellOffer, id Identity) (mine, others []SellOffer) {
	mine = []SellOffer{}
	others = []SellOffer{}
	for _, o := range offers {
		if !o.IsActive() {
			continue
		}
		if o.Involves(id) {
			mine = append(mine, o)
		} else {
			others = append(others, o)
		}
	}
	return mine, others
}

// TokenIDs returns the NFT IDs and seller IDs of the offers, index aligned
func TokenIDs(offers []SellOffer) (tokenIDs []string, sellers []int64) {
	tokenIDs = make([]string, 0, len(offers))
	sellers = make([]int64, 0, len(offers))
	for _, o := range offers {
		tokenIDs = append(tokenIDs, o.NFTokenID)
		sellers = append(sellers, o.Seller)
	}
	return tokenIDs, sellers
}
