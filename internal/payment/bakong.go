package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

// Bakong talks to the KHQR provider. Payload construction is local; the
// status poll goes out over the provider's HTTP API behind a circuit
// breaker so a flapping provider does not pin request goroutines.
type Bakong struct {
	baseURL string
	token   string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
}

func NewBakong(baseURL, token string) *Bakong {
	return &Bakong{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 15 * time.Second},
		breaker: gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
			Name:    "bakong",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

func (b *Bakong) CreateRequest(_ context.Context, req Request) (*PaymentRequest, error) {
	if req.AccountRef == "" || req.MerchantName == "" || req.BillNumber == "" {
		return nil, &GatewayError{Op: "create", Err: errors.New("missing merchant account, name or bill number")}
	}
	if !req.Amount.IsPositive() {
		return nil, &GatewayError{Op: "create", Err: errors.New("amount must be positive")}
	}

	payload, err := buildPayload(req)
	if err != nil {
		return nil, &GatewayError{Op: "create", Err: err}
	}

	return &PaymentRequest{
		Payload:   payload,
		RequestID: requestID(payload),
	}, nil
}

type checkStatusRequest struct {
	MD5 string `json:"md5"`
}

type checkStatusResponse struct {
	ResponseCode    int    `json:"responseCode"`
	ResponseMessage string `json:"responseMessage"`
}

func (b *Bakong) CheckStatus(ctx context.Context, id string) (Status, error) {
	body, err := b.breaker.Execute(func() ([]byte, error) {
		return b.postCheck(ctx, id)
	})
	if err != nil {
		return StatusUnpaid, &GatewayError{Op: "check", Err: err}
	}

	var resp checkStatusResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return StatusUnpaid, &GatewayError{Op: "check", Err: fmt.Errorf("malformed response: %w", err)}
	}

	// Code 0 means the transaction was found, i.e. settled.
	if resp.ResponseCode == 0 {
		return StatusPaid, nil
	}
	return StatusUnpaid, nil
}

func (b *Bakong) postCheck(ctx context.Context, id string) ([]byte, error) {
	payload, err := json.Marshal(checkStatusRequest{MD5: id})
	if err != nil {
		return nil, err
	}

	url := b.baseURL + "/v1/check_transaction_by_md5"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.token)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider returned %d: %s", resp.StatusCode, body)
	}
	return body, nil
}
