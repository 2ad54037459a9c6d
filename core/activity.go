package core

import "time"

// ActivityKind names a marketplace intent forwarded on a user's behalf
type ActivityKind string

const (
	ActivityMint        ActivityKind = "mint"
	ActivityCreateOffer ActivityKind = "create_sell_offer"
	ActivityAcceptOffer ActivityKind = "accept_sell_offer"
	ActivityCancelOffer ActivityKind = "cancel_sell_offer"
	ActivityTrade       ActivityKind = "trade_nft"
)

// Activity is a journal row for one successful intent
type Activity struct {
	ID        int64        `json:"id"`
	UserID    int64        `json:"user_id"`
	Username  string       `json:"username"`
	Kind      ActivityKind `json:"kind"`
	Reference string       `json:"reference,omitempty"` // NFT ID or offer index
	CreatedAt time.Time    `json:"created_at"`
}

// Exchanged reports whether the activity moved an NFT between accounts
func (a Activity) Exchanged() bool {
	return a.Kind == ActivityAcceptOffer || a.Kind == ActivityTrade
}

// Dashboard summarises a user's holdings
type Dashboard struct {
	Address         string     `json:"address,omitempty"`
	TotalAssets     int        `json:"total_assets"`
	AssetsForSale   int        `json:"assets_for_sale"`
	AssetsExchanged int        `json:"assets_exchanged"`
	Recent          []Activity `json:"recent_activity"`
}
