package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/layer-3/tokenasset/core"
	"github.com/layer-3/tokenasset/ports"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultActivityLimit = 20
	MaxActivityLimit     = 100

	dashboardRecent = 5
)

// MarketService forwards marketplace intents to the backend on behalf of a
// session and assembles the read views built from backend data.
type MarketService struct {
	backend  ports.Backend
	journal  ports.ActivityStore
	eventPub ports.EventPublisher
	logger   *slog.Logger
}

// NewMarketService creates a new marketplace service
func NewMarketService(backend ports.Backend, journal ports.ActivityStore, eventPub ports.EventPublisher, logger *slog.Logger) *MarketService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MarketService{
		backend:  backend,
		journal:  journal,
		eventPub: eventPub,
		logger:   logger,
	}
}

// Forward sends the client body to the route's backend endpoint with the
// session's bearer token. Any backend status is returned as a response;
// errors mean the request was malformed or never got an answer.
func (s *MarketService) Forward(ctx context.Context, session *core.Session, route Route, body []byte) (*ports.Response, error) {
	if route.Method == http.MethodGet {
		body = nil
	} else if route.Shape != nil {
		shaped, err := route.Shape(body)
		if err != nil {
			return nil, err
		}
		body = shaped
	}

	resp, err := s.backend.Do(ctx, route.Method, route.UpstreamPath, session.BearerToken, body)
	if err != nil {
		return nil, fmt.Errorf("forward %s: %w", route.Name, err)
	}

	if resp.OK() && route.Activity != "" {
		s.recordActivity(ctx, session, route.Activity, reference(body, route.RefField))
	}

	return resp, nil
}

func (s *MarketService) recordActivity(ctx context.Context, session *core.Session, kind core.ActivityKind, ref string) {
	activity := &core.Activity{
		UserID:    session.UserID,
		Username:  session.Username,
		Kind:      kind,
		Reference: ref,
		CreatedAt: time.Now(),
	}

	if err := s.journal.Record(ctx, activity); err != nil {
		s.logger.Warn("failed to journal activity", "kind", kind, "user", session.Username, "error", err)
	}
	if err := s.eventPub.PublishActivity(ctx, activity); err != nil {
		s.logger.Warn("failed to publish activity event", "kind", kind, "user", session.Username, "error", err)
	}
}

// Offers fetches every sell offer known to the backend
func (s *MarketService) Offers(ctx context.Context, session *core.Session) ([]core.SellOffer, error) {
	resp, err := s.Forward(ctx, session, RouteAllSellOffers, nil)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, upstreamError(resp)
	}

	var list struct {
		SellOffers []core.SellOffer `json:"sell_offers"`
	}
	if err := json.Unmarshal(resp.Body, &list); err != nil {
		return nil, fmt.Errorf("decode sell offers: %w", err)
	}
	return list.SellOffers, nil
}

// Marketplace partitions all active offers for the session's user and joins
// NFT metadata. A metadata failure leaves the offers without images.
func (s *MarketService) Marketplace(ctx context.Context, session *core.Session) (*core.Marketplace, error) {
	offers, err := s.Offers(ctx, session)
	if err != nil {
		return nil, err
	}

	var records []core.NFTRecord
	if len(offers) > 0 {
		records, err = s.nftRecords(ctx, session, offers)
		if err != nil {
			s.logger.Warn("failed to fetch nft metadata", "user", session.Username, "error", err)
		}
	}

	market := core.BuildMarketplace(offers, records, session.Identity())
	return &market, nil
}

func (s *MarketService) nftRecords(ctx context.Context, session *core.Session, offers []core.SellOffer) ([]core.NFTRecord, error) {
	tokenIDs, sellers := core.TokenIDs(offers)
	body, err := json.Marshal(map[string]any{
		"nftoken_ids": tokenIDs,
		"sellers":     sellers,
	})
	if err != nil {
		return nil, err
	}

	resp, err := s.Forward(ctx, session, RouteGetNFTs, body)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, upstreamError(resp)
	}

	var list struct {
		NFTs []core.NFTRecord `json:"nfts"`
	}
	if err := json.Unmarshal(resp.Body, &list); err != nil {
		return nil, fmt.Errorf("decode nfts: %w", err)
	}
	return list.NFTs, nil
}

// Assets lists the session's NFTs with decoded metadata
func (s *MarketService) Assets(ctx context.Context, session *core.Session) ([]core.Asset, error) {
	resp, err := s.Forward(ctx, session, RouteListAssets, nil)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, upstreamError(resp)
	}
	return core.ParseAssets(resp.Body)
}

// Dashboard summarises holdings, open offers and past exchanges
func (s *MarketService) Dashboard(ctx context.Context, session *core.Session) (*core.Dashboard, error) {
	var (
		assets []core.Asset
		offers []core.SellOffer
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		assets, err = s.Assets(gctx, session)
		return err
	})
	g.Go(func() error {
		var err error
		offers, err = s.Offers(gctx, session)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	forSale := 0
	for _, o := range offers {
		if o.IsActive() && o.SellerUsername == session.Username {
			forSale++
		}
	}

	exchanged, err := s.journal.CountExchanged(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("count exchanges: %w", err)
	}
	recent, err := s.journal.Recent(ctx, session.UserID, dashboardRecent)
	if err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}

	return &core.Dashboard{
		Address:         session.Address,
		TotalAssets:     len(assets),
		AssetsForSale:   forSale,
		AssetsExchanged: exchanged,
		Recent:          recent,
	}, nil
}

// Activity returns the session user's journal, newest first
func (s *MarketService) Activity(ctx context.Context, session *core.Session, limit int) ([]core.Activity, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	if limit > MaxActivityLimit {
		limit = MaxActivityLimit
	}
	return s.journal.Recent(ctx, session.UserID, limit)
}
