package service

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/layer-3/tokenasset/core"
)

// Route maps a browser-facing action onto a backend endpoint
type Route struct {
	Name         string // Path segment under /api on the gateway
	Method       string
	UpstreamPath string

	// Activity is journalled after a 2xx reply; empty for reads
	Activity core.ActivityKind
	// RefField names the request field recorded as the activity reference
	RefField string

	// Shape rewrites the client body before forwarding; nil forwards verbatim
	Shape func(body []byte) ([]byte, error)
}

var (
	RouteWallet          = Route{Name: "wallet", Method: http.MethodGet, UpstreamPath: "/api/wallet/"}
	RouteListAssets      = Route{Name: "list_assets", Method: http.MethodGet, UpstreamPath: "/api/list_assets/"}
	RouteAllSellOffers   = Route{Name: "all_sell_offers", Method: http.MethodGet, UpstreamPath: "/api/all_sell_offers/"}
	RouteSellOffersForMe = Route{Name: "sell_offers_for_me", Method: http.MethodGet, UpstreamPath: "/api/sell_offers_for_me/"}

	RouteCreateAsset = Route{
		Name: "create_asset", Method: http.MethodPost, UpstreamPath: "/api/asset/",
		Activity: core.ActivityMint, Shape: shapeMint,
	}
	RouteCreateSellOffer = Route{
		Name: "create_sell_offer", Method: http.MethodPost, UpstreamPath: "/api/create_sell_offer/",
		Activity: core.ActivityCreateOffer, RefField: "nft_id", Shape: shapeSellOffer,
	}
	RouteAcceptSellOffer = Route{
		Name: "accept_sell_offer", Method: http.MethodPost, UpstreamPath: "/api/accept_sell_offer/",
		Activity: core.ActivityAcceptOffer, RefField: "offer_index",
	}
	RouteCancelSellOffer = Route{
		Name: "cancel_sell_offer", Method: http.MethodPost, UpstreamPath: "/api/cancel_sell_offer/",
		Activity: core.ActivityCancelOffer, RefField: "offer_index",
	}
	RouteGetNFTs = Route{
		Name: "get_nfts", Method: http.MethodPost, UpstreamPath: "/api/get_nfts/",
		Shape: shapeGetNFTs,
	}
	RouteTradeNFT = Route{
		Name: "trade_nft", Method: http.MethodPost, UpstreamPath: "/api/trade_nft/",
		Activity: core.ActivityTrade, RefField: "nft_id",
	}
)

// ForwardRoutes lists every passthrough route the gateway serves
var ForwardRoutes = []Route{
	RouteWallet,
	RouteCreateAsset,
	RouteListAssets,
	RouteCreateSellOffer,
	RouteAllSellOffers,
	RouteSellOffersForMe,
	RouteAcceptSellOffer,
	RouteCancelSellOffer,
	RouteGetNFTs,
	RouteTradeNFT,
}

// shapeMint forwards {URI} as-is, or builds the URI from name/description/image
func shapeMint(body []byte) ([]byte, error) {
	var req struct {
		URI         *string `json:"URI"`
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Image       string  `json:"image"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, &core.ValidationError{Reason: "Invalid request"}
	}
	if req.URI != nil {
		return json.Marshal(map[string]string{"URI": *req.URI})
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, &core.ValidationError{Reason: "URI or name is required"}
	}

	payload, err := json.Marshal(core.NFTMetadata{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		return nil, err
	}
	return json.Marshal(map[string]string{"URI": string(payload)})
}

// shapeSellOffer keeps the offer fields and converts amount_xrp to drops
func shapeSellOffer(body []byte) ([]byte, error) {
	var req struct {
		NFTID       string          `json:"nft_id"`
		Amount      json.RawMessage `json:"amount"`
		AmountXRP   string          `json:"amount_xrp"`
		Destination *string         `json:"destination"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, &core.ValidationError{Reason: "Invalid request"}
	}

	amount := req.Amount
	if len(amount) == 0 && req.AmountXRP != "" {
		drops, err := core.XRPToDrops(req.AmountXRP)
		if err != nil {
			return nil, &core.ValidationError{Reason: "amount_xrp must be a non-negative XRP amount with at most 6 decimals"}
		}
		amount, _ = json.Marshal(drops)
	}

	out := struct {
		NFTID       string          `json:"nft_id"`
		Amount      json.RawMessage `json:"amount"`
		Destination *string         `json:"destination"`
	}{req.NFTID, amount, req.Destination}
	if len(out.Amount) == 0 {
		out.Amount = json.RawMessage("null")
	}
	return json.Marshal(out)
}

// shapeGetNFTs requires a non-empty list of token IDs
func shapeGetNFTs(body []byte) ([]byte, error) {
	var req struct {
		NFTokenIDs []string        `json:"nftoken_ids"`
		Sellers    json.RawMessage `json:"sellers"`
	}
	if err := json.Unmarshal(body, &req); err != nil || len(req.NFTokenIDs) == 0 {
		return nil, &core.ValidationError{Reason: "nftoken_ids must be a non-empty list"}
	}

	out := struct {
		NFTokenIDs []string        `json:"nftoken_ids"`
		Sellers    json.RawMessage `json:"sellers"`
	}{req.NFTokenIDs, req.Sellers}
	if len(out.Sellers) == 0 {
		out.Sellers = json.RawMessage("null")
	}
	return json.Marshal(out)
}

// reference pulls a string field out of a JSON body, if present
func reference(body []byte, field string) string {
	if field == "" || len(body) == 0 {
		return ""
	}
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return ""
	}
	v, _ := fields[field].(string)
	return v
}
