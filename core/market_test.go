package core

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMarketplace(t *testing.T) {
	offers := []SellOffer{
		{ID: 1, NFTokenID: "A", SellerUsername: "alice", Amount: "2000000", Status: OfferActive},
		{ID: 2, NFTokenID: "B", SellerUsername: "bob", Amount: "500000", Status: OfferActive},
		{ID: 3, NFTokenID: "C", SellerUsername: "bob", Amount: "1", Status: OfferAccepted},
	}
	records := []NFTRecord{
		{ID: "A", URI: "https://img/a.png", Name: "Coin A", Description: "first"},
	}

	market := BuildMarketplace(offers, records, Identity{Username: "alice", Address: "rAlice"})

	require.Len(t, market.Mine, 1)
	require.Len(t, market.Others, 1)

	mine := market.Mine[0]
	assert.Equal(t, "2 XRP", mine.Price)
	assert.False(t, mine.CanAccept)
	require.NotNil(t, mine.NFT)
	assert.Equal(t, "https://img/a.png", mine.NFT.Image)
	assert.Equal(t, "Coin A", mine.NFT.Name)

	other := market.Others[0]
	assert.Equal(t, "0.5 XRP", other.Price)
	assert.True(t, other.CanAccept)
	assert.Nil(t, other.NFT)
}

func TestNFTRecord_MetadataDecodesHex(t *testing.T) {
	uri := hex.EncodeToString([]byte(`{"name":"Silver","image":"https://img/s.png"}`))

	meta := NFTRecord{ID: "X", URI: uri}.Metadata()

	assert.Equal(t, "Silver", meta.Name)
	assert.Equal(t, "https://img/s.png", meta.Image)
}

func TestBuildMarketplace_NoOffers(t *testing.T) {
	market := BuildMarketplace(nil, nil, Identity{Username: "alice"})
	assert.NotNil(t, market.Mine)
	assert.NotNil(t, market.Others)
	assert.Empty(t, market.Mine)
}
