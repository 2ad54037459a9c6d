package core

import (
	"encoding/json"
	"fmt"
)

// ledgerNFT mirrors an entry of an XRPL account_nfts result
type ledgerNFT struct {
	NFTokenID    string `json:"NFTokenID"`
	URI          string `json:"URI"`
	Issuer       string `json:"Issuer"`
	Owner        string `json:"Owner"`
	NFTokenTaxon int64  `json:"NFTokenTaxon"`
	Serial       int64  `json:"nft_serial"`
}

type ledgerNFTList struct {
	AccountNFTs []ledgerNFT `json:"account_nfts"`
	NFTs        []ledgerNFT `json:"nfts"`
	Account     string      `json:"account"`
	Result      *struct {
		AccountNFTs []ledgerNFT `json:"account_nfts"`
		Account     string      `json:"account"`
	} `json:"result"`
}

// ParseAssets decodes a list_assets reply. The backend relays the ledger
// response either bare, wrapped in "result", or as "nfts".
func ParseAssets(body []byte) ([]Asset, error) {
	var list ledgerNFTList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("decode asset list: %w", err)
	}

	entries, account := list.AccountNFTs, list.Account
	if len(entries) == 0 && list.Result != nil {
		entries, account = list.Result.AccountNFTs, list.Result.Account
	}
	if len(entries) == 0 {
		entries = list.NFTs
	}

	assets := make([]Asset, 0, len(entries))
	for _, e := range entries {
		owner := e.Owner
		if owner == "" {
			owner = account
		}
		assets = append(assets, Asset{
			TokenID: e.NFTokenID,
			URI:     e.URI,
			Issuer:  e.Issuer,
			Owner:   owner,
			Taxon:   e.NFTokenTaxon,
			Serial:  e.Serial,
			Meta:    DecodeURI(e.URI),
		})
	}
	return assets, nil
}
