// Command sample declares a small billing API contract and exercises
// it end to end: it encodes canned response envelopes, decodes them
// through the endpoint descriptors, walks a server-sent event stream,
// and can print the OpenAPI manifest derived from the registry.
//
// Run:
//
//	go run ./cmd/sample                       — decode walkthrough
//	go run ./cmd/sample -spec                 — print the manifest as JSON
//	go run ./cmd/sample -spec -yaml           — print the manifest as YAML
//	go run ./cmd/sample -spec -o openapi.json — write the manifest to a file
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/bjaus/contract"
	"github.com/bjaus/contract/decode"
)

func main() {
	specFlag := flag.Bool("spec", false, "Print the OpenAPI manifest and exit")
	yamlFlag := flag.Bool("yaml", false, "Print the manifest as YAML (requires -spec)")
	outFlag := flag.String("o", "", "Output file for the manifest (requires -spec)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	reg := newRegistry()

	if *specFlag {
		if err := writeSpec(reg, *outFlag, *yamlFlag); err != nil {
			slog.Error("manifest generation failed", "err", err)
			os.Exit(1)
		}
		return
	}

	if err := runDemo(); err != nil {
		slog.Error("demo failed", "err", err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// Domain types
// ---------------------------------------------------------------------------

// BillingCode is the invoice API's error code vocabulary.
type BillingCode string

const (
	CodeInvoiceNotFound BillingCode = "INVOICE_NOT_FOUND"
	CodeInvoiceClosed   BillingCode = "INVOICE_CLOSED"
	CodeLimitExceeded   BillingCode = "LIMIT_EXCEEDED"
)

var billingCodes = decode.Enum(CodeInvoiceNotFound, CodeInvoiceClosed, CodeLimitExceeded)

// Invoice is the core domain entity.
type Invoice struct {
	ID       string    `json:"id"`
	Customer string    `json:"customer"`
	Cents    int64     `json:"cents"`
	Status   string    `json:"status" validate:"omitempty,oneof=open paid void" doc:"Invoice lifecycle state"`
	IssuedAt time.Time `json:"issued_at"`
}

// InvoiceParams binds the {id} route token.
type InvoiceParams struct {
	ID string `schema:"id" validate:"required" doc:"Invoice ID"`
}

// CreateInvoiceReq is the create-invoice request body.
type CreateInvoiceReq struct {
	Customer string `json:"customer" validate:"required" doc:"Customer account"`
	Cents    int64  `json:"cents" validate:"required,gt=0" doc:"Amount in cents"`
}

// ---------------------------------------------------------------------------
// Endpoint contract
// ---------------------------------------------------------------------------

var (
	createInvoice = contract.Post("/invoices", contract.NoParams,
		decode.Struct[CreateInvoiceReq](),
		contract.ResponseDecoder(billingCodes, decode.Struct[Invoice]()))

	getInvoice = contract.BearerGet("/invoices/{id}",
		decode.Params[InvoiceParams](),
		contract.AuthResponseDecoder(billingCodes, decode.Struct[Invoice]()))

	voidInvoice = contract.BearerDelete("/invoices/{id}",
		decode.Params[InvoiceParams](),
		contract.AdminResponseDecoder(billingCodes, decode.Struct[Invoice]()))

	invoiceEvents = contract.BearerStreamGet("/invoices/{id}/events",
		decode.Params[InvoiceParams](),
		contract.AuthResponseDecoder(billingCodes, decode.Struct[Invoice]()))
)

func newRegistry() *contract.Registry {
	reg := contract.NewRegistry(
		contract.WithTitle("Billing API"),
		contract.WithVersion("1.0.0"),
	)

	v1 := reg.Group("/v1", contract.WithGroupTags("v1"))

	contract.Register(v1, createInvoice,
		contract.WithSummary("Create invoice"),
		contract.WithTags("invoices"),
		contract.WithErrorCodes(billingCodes.Values()...),
	)
	contract.Register(v1, getInvoice,
		contract.WithSummary("Get invoice by ID"),
		contract.WithTags("invoices"),
		contract.WithErrorCodes(billingCodes.Values()...),
	)
	contract.Register(v1, voidInvoice,
		contract.WithSummary("Void invoice"),
		contract.WithDescription("Admin-only: voids the invoice and returns its final state."),
		contract.WithTags("invoices", "admin"),
		contract.WithErrorCodes(billingCodes.Values()...),
	)
	contract.Register(v1, invoiceEvents,
		contract.WithSummary("Invoice event stream"),
		contract.WithDescription("Emits the invoice's state as an envelope per event."),
		contract.WithTags("invoices", "streaming"),
	)

	return reg
}

// ---------------------------------------------------------------------------
// Manifest output
// ---------------------------------------------------------------------------

func writeSpec(reg *contract.Registry, outFile string, asYAML bool) error {
	w := os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile) //nolint:gosec // user-provided CLI flag
		if err != nil {
			return err
		}
		defer func() {
			if err := f.Close(); err != nil {
				slog.Error("failed to close output file", "err", err)
			}
		}()
		w = f
	}
	if asYAML {
		return reg.WriteSpecYAML(w)
	}
	return reg.WriteSpec(w)
}

// ---------------------------------------------------------------------------
// Decode walkthrough
// ---------------------------------------------------------------------------

func runDemo() error {
	// URL parameters and request body, as the transport would bind them.
	params, err := getInvoice.Params().Decode(map[string]any{"id": "inv_42"})
	if err != nil {
		return fmt.Errorf("decode params: %w", err)
	}
	slog.Info("params decoded", "id", params.ID)

	body, err := decode.FromJSON(createInvoice.Body(), []byte(`{"customer":"acme","cents":1250}`))
	if err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	slog.Info("body decoded", "customer", body.Customer, "cents", body.Cents)

	if _, err := decode.FromJSON(createInvoice.Body(), []byte(`{"customer":"acme","cents":-1}`)); err != nil {
		slog.Info("invalid body rejected", "err", err)
	}

	// The three envelope variants, round-tripped through the contract.
	okBody, err := contract.EncodeOk(Invoice{
		ID:       "inv_42",
		Customer: "acme",
		Cents:    1250,
		Status:   "open",
		IssuedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	resp, err := contract.DecodeResponse(getInvoice.Response(), http.StatusOK, okBody)
	if err != nil {
		return fmt.Errorf("decode ok envelope: %w", err)
	}
	slog.Info("ok envelope", "tag", resp.Tag, "customer", resp.Data.Customer)

	errBody, err := contract.EncodeErr(CodeInvoiceNotFound)
	if err != nil {
		return err
	}
	resp, err = contract.DecodeResponse(getInvoice.Response(), http.StatusBadRequest, errBody)
	if err != nil {
		return fmt.Errorf("decode err envelope: %w", err)
	}
	slog.Info("err envelope", "tag", resp.Tag, "code", resp.Code)

	srvBody, err := contract.EncodeServerError(contract.NewErrorID())
	if err != nil {
		return err
	}
	resp, err = contract.DecodeResponse(getInvoice.Response(), http.StatusInternalServerError, srvBody)
	if err != nil {
		return fmt.Errorf("decode server error envelope: %w", err)
	}
	slog.Info("server error envelope", "tag", resp.Tag, "errorID", resp.ErrorID)

	// UNAUTHORISED is part of the bearer vocabulary but not the plain one.
	unauthBody, err := contract.EncodeErr(contract.CodeUnauthorised)
	if err != nil {
		return err
	}
	resp, err = contract.DecodeResponse(voidInvoice.Response(), http.StatusBadRequest, unauthBody)
	if err != nil {
		return fmt.Errorf("decode admin unauthorised envelope: %w", err)
	}
	slog.Info("admin unauthorised envelope", "tag", resp.Tag, "code", resp.Code)

	if _, err := contract.DecodeResponse(createInvoice.Response(), http.StatusBadRequest, unauthBody); err != nil {
		slog.Info("plain endpoint rejects UNAUTHORISED", "err", err)
	}

	return runStreamDemo()
}

// runStreamDemo frames envelopes as server-sent events and walks them
// back through the stream endpoint's decoder.
func runStreamDemo() error {
	var buf bytes.Buffer
	statuses := []string{"open", "paid"}
	for i, status := range statuses {
		payload, err := contract.EncodeOk(Invoice{
			ID:       "inv_42",
			Customer: "acme",
			Cents:    1250,
			Status:   status,
			IssuedAt: time.Now().UTC(),
		})
		if err != nil {
			return err
		}
		ev := contract.SSEEvent{
			ID:    fmt.Sprintf("%d", i+1),
			Event: "invoice",
			Data:  payload,
		}
		if err := contract.EncodeSSEEvent(&buf, ev); err != nil {
			return err
		}
	}

	dec := invoiceEvents.Response()(http.StatusOK)
	sc := contract.NewEventScanner(&buf)
	for sc.Scan() {
		ev := sc.Event()
		resp, err := decode.FromJSON(dec, ev.Data)
		if err != nil {
			return fmt.Errorf("decode event %s: %w", ev.ID, err)
		}
		slog.Info("stream event", "id", ev.ID, "tag", resp.Tag, "status", resp.Data.Status)
	}
	return sc.Err()
}
