package treasury

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/meenmo/fimatrix/internal/config"
	"github.com/meenmo/fimatrix/utils"
)

// Kind is a TreasuryDirect security type accepted by the search endpoint.
type Kind string

const (
	Bill Kind = "Bill"
	Note Kind = "Note"
	Bond Kind = "Bond"
	CMB  Kind = "CMB"
	TIPS Kind = "TIPS"
	FRN  Kind = "FRN"
)

var kinds = [...]Kind{Bill, Note, Bond, CMB, TIPS, FRN}

var (
	ErrUnknownKind = errors.New("unknown security kind")
	ErrBadResponse = errors.New("unexpected treasury api response")
)

// ParseKind validates a user supplied kind, case-insensitively.
func ParseKind(s string) (Kind, error) {
	for _, k := range kinds {
		if strings.EqualFold(string(k), strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("ParseKind %q: %w", s, ErrUnknownKind)
}

const searchPath = "/TA_WS/securities/search"

// timestampLayout is how the search endpoint writes dates.
const timestampLayout = "2006-01-02T15:04:05"

type rawSecurity struct {
	CUSIP        string `json:"cusip"`
	IssueDate    string `json:"issueDate"`
	SecurityType string `json:"securityType"`
	SecurityTerm string `json:"securityTerm"`
	MaturityDate string `json:"maturityDate"`
	InterestRate string `json:"interestRate"`
	RSPOEOpening string `json:"rspoeopening"`
}

type Client struct {
	client *resty.Client
}

func New(cfg *config.Config) *Client {
	client := resty.New().
		SetDebug(cfg.API.Debug).
		SetTimeout(cfg.API.Timeout).
		SetBaseURL(cfg.API.TreasuryApi.Url)
	return &Client{client: client}
}

// Securities lists every auctioned security of the given kind. Rows repeated
// by the endpoint (same CUSIP and issue date) are returned once.
func (c *Client) Securities(ctx context.Context, kind Kind) ([]Security, error) {
	rqID := utils.RequestIDFromCtx(ctx)
	op := "treasury.Client.Securities"

	if _, err := ParseKind(string(kind)); err != nil {
		return nil, err
	}

	slog.Debug("start request", slog.String("rqID", rqID), slog.String("op", op), slog.String("kind", string(kind)))

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(map[string]string{
			"type":   string(kind),
			"format": "json",
		}).
		Get(searchPath)
	if err != nil {
		slog.Error("error while dialing treasury api", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}
	if resp.IsError() {
		slog.Error("treasury api returned error status", slog.String("rqID", rqID), slog.String("op", op), slog.Int("status", resp.StatusCode()))
		return nil, fmt.Errorf("%s: status %d: %w", op, resp.StatusCode(), ErrBadResponse)
	}

	var raw []rawSecurity
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		slog.Error("can't unmarshal treasury response", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, fmt.Errorf("%s: %w: %v", op, ErrBadResponse, err)
	}

	res, err := parseRawSecurities(raw)
	if err != nil {
		slog.Error("can't parse raw securities", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}

	slog.Debug("request complete", slog.String("rqID", rqID), slog.String("op", op), slog.Int("securities", len(res)))

	return res, nil
}

func parseRawSecurities(raw []rawSecurity) ([]Security, error) {
	type key struct {
		cusip string
		issue time.Time
	}
	seen := make(map[key]struct{}, len(raw))
	res := make([]Security, 0, len(raw))

	for i, r := range raw {
		sec, err := r.toSecurity()
		if err != nil {
			return nil, fmt.Errorf("security %d (%s): %w", i, r.CUSIP, err)
		}
		k := key{sec.CUSIP, sec.IssueDate}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		res = append(res, sec)
	}
	return res, nil
}

func (r rawSecurity) toSecurity() (Security, error) {
	sec := Security{
		CUSIP:        r.CUSIP,
		SecurityType: r.SecurityType,
		SecurityTerm: r.SecurityTerm,
		RSPOEOpening: r.RSPOEOpening,
	}

	var err error
	if sec.IssueDate, err = parseTimestamp(r.IssueDate); err != nil {
		return Security{}, fmt.Errorf("issueDate: %w", err)
	}
	if sec.MaturityDate, err = parseTimestamp(r.MaturityDate); err != nil {
		return Security{}, fmt.Errorf("maturityDate: %w", err)
	}
	if sec.MaturityDate.IsZero() {
		return Security{}, fmt.Errorf("maturityDate: missing: %w", ErrBadResponse)
	}

	// Bills carry an empty interest rate.
	if rate := strings.TrimSpace(r.InterestRate); rate != "" {
		if sec.InterestRate, err = decimal.NewFromString(rate); err != nil {
			return Security{}, fmt.Errorf("interestRate %q: %w", rate, err)
		}
	}
	return sec, nil
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(timestampLayout, s); err == nil {
		return t, nil
	}
	return utils.ParseDate(s)
}
