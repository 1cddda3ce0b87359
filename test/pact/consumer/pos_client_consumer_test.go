//go:build pact
// +build pact

package consumer_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"

	posclient "github.com/Apurer/go-gin-order-bridge/internal/clients/http/pos"
	pacttest "github.com/Apurer/go-gin-order-bridge/test/pact"
)

const acceptedOrder = `{"id":64783425355,"price":"10.00","orderItems":[{"type":"item","id":762,"price":2}]}`

func TestPOSClientContract(t *testing.T) {
	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ProviderName,
		Provider: pacttest.POSProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	pact.AddInteraction().
		Given(pacttest.StatePOSAccepts).
		UponReceiving("a new POS order").
		WithRequest("POST", posclient.OrdersPath, func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.Header("Idempotency-Key", matchers.Like(pacttest.ReceiptID))
			b.JSONBody(matchers.Map{
				"id":    matchers.Like(pacttest.ExistingOrderID),
				"price": matchers.Term("10.00", `^\d+\.\d{2}$`),
			})
		}).
		WillRespondWith(http.StatusCreated)

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client, err := newPOSClient(config)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return client.SubmitOrder(ctx, []byte(acceptedOrder), posclient.WithIdempotencyKey(pacttest.ReceiptID))
	})
	require.NoError(t, err)
}

func TestPOSClientRejectionContract(t *testing.T) {
	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ProviderName,
		Provider: pacttest.POSProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	pact.AddInteraction().
		Given(pacttest.StatePOSRejects).
		UponReceiving("a POS order with an unknown item").
		WithRequest("POST", posclient.OrdersPath, func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{"id": matchers.Like(pacttest.ExistingOrderID)})
		}).
		WillRespondWith(http.StatusUnprocessableEntity, func(b *pactconsumer.V2ResponseBuilder) {
			b.JSONBody(matchers.Map{
				"code":    matchers.Like("UNKNOWN_ITEM"),
				"message": matchers.Like("item 762 is not on the menu"),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client, err := newPOSClient(config)
		if err != nil {
			return err
		}
		err = client.SubmitOrder(context.Background(), []byte(acceptedOrder))
		if !errors.Is(err, posclient.ErrRejected) {
			return fmt.Errorf("expected rejection, got %v", err)
		}
		return nil
	})
	require.NoError(t, err)
}

func newPOSClient(config pactconsumer.MockServerConfig) (*posclient.Client, error) {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	return posclient.NewClient(fmt.Sprintf("http://%s:%d", host, config.Port), &http.Client{Timeout: 10 * time.Second})
}
