package cli

import (
	"context"
	"os"

	"github.com/easyflowhq/easyflow/internal/client/models"
)

// Upgrade starts a hosted checkout for the chosen plan and prints the URL
// the user has to open in a browser.
func (a *App) Upgrade(ctx context.Context) error {
	plan, err := getSimpleText(a.reader, "Enter plan (pro/elite)", os.Stdout)
	if err != nil {
		return err
	}

	var checkout *models.CheckoutSession
	switch plan {
	case "pro":
		checkout, err = a.client.CreateCheckout(ctx)
	case "elite":
		checkout, err = a.client.CreateEliteCheckout(ctx)
	default:
		printlnFn("Unknown plan:", plan)
		return nil
	}
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	printlnFn("Open this URL in your browser to complete the checkout:")
	printlnFn(checkout.URL)
	return nil
}

// Portal prints the URL of the hosted billing portal.
func (a *App) Portal(ctx context.Context) error {
	portal, err := a.client.BillingPortal(ctx)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	printlnFn("Open this URL in your browser to manage your subscription:")
	printlnFn(portal.URL)
	return nil
}

// Feedback sends a beta feedback message.
func (a *App) Feedback(ctx context.Context) error {
	message, err := getSimpleText(a.reader, "Enter feedback", os.Stdout)
	if err != nil {
		return err
	}
	if message == "" {
		printlnFn("Nothing to send.")
		return nil
	}

	if err := a.client.SubmitFeedback(ctx, models.Feedback{Message: message, Source: "cli"}); err != nil {
		printlnFn("Error:", err)
		return err
	}

	printlnFn("Thanks for the feedback!")
	return nil
}
