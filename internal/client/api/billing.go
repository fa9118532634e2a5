package api

import (
	"context"
	"net/http"

	"github.com/easyflowhq/easyflow/internal/client/models"
)

func (c *Client) CreateCheckout(ctx context.Context) (*models.CheckoutSession, error) {
	var resp models.CheckoutSession
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/api/payments/checkout",
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CreateEliteCheckout(ctx context.Context) (*models.CheckoutSession, error) {
	var resp models.CheckoutSession
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/api/payments/checkout/elite",
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) BillingPortal(ctx context.Context) (*models.PortalSession, error) {
	var resp models.PortalSession
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/api/payments/portal",
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

type confirmCheckoutRequest struct {
	SessionID string `json:"sessionId"`
}

func (c *Client) ConfirmCheckout(ctx context.Context, sessionID string) (*models.PlanChange, error) {
	var resp models.PlanChange
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/api/payments/confirm",
		body:   confirmCheckoutRequest{SessionID: sessionID},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) SubmitFeedback(ctx context.Context, fb models.Feedback) error {
	return c.do(ctx, call{
		method: http.MethodPost,
		path:   "/api/beta/feedback",
		body:   fb,
	}, nil)
}

func (c *Client) UnlockProBeta(ctx context.Context) (*models.PlanChange, error) {
	var resp models.PlanChange
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/api/beta/unlock",
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
