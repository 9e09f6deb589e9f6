package main

import (
	"context"
	"fmt"
	"io"

	"invoicefx/internal/application/service"
	"invoicefx/internal/domain/entity"
	"invoicefx/internal/platform/config"
)

type addInvoiceAction struct {
	prompter *prompter
	cfg      *config.Config
	ledger   *service.LedgerService
}

func (a *addInvoiceAction) Name() string { return "Add invoice" }

func (a *addInvoiceAction) Execute(ctx context.Context) error {
	amount, err := a.prompter.readFloat("Invoice amount: ")
	if err != nil {
		return err
	}
	currency, err := a.prompter.readString(fmt.Sprintf("Currency [%s]: ", availableCurrencies(a.cfg)))
	if err != nil {
		return err
	}
	date, err := a.prompter.readDate("Issue date [YYYY-MM-DD]: ")
	if err != nil {
		return err
	}

	inv, err := a.ledger.CreateInvoice(ctx, service.InvoiceDraft{
		Amount:   amount,
		Currency: currency,
		Date:     date,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.prompter.out, "Added invoice %s\n", inv.ID)
	return nil
}

type addPaymentAction struct {
	prompter *prompter
	cfg      *config.Config
	ledger   *service.LedgerService
}

func (a *addPaymentAction) Name() string { return "Add payment" }

func (a *addPaymentAction) Execute(ctx context.Context) error {
	inv, err := chooseInvoice(ctx, a.prompter, a.ledger)
	if err != nil {
		return err
	}

	amount, err := a.prompter.readFloat("Payment amount: ")
	if err != nil {
		return err
	}
	currency, err := a.prompter.readString(fmt.Sprintf("Currency [%s]: ", availableCurrencies(a.cfg)))
	if err != nil {
		return err
	}
	date, err := a.prompter.readDate("Payment date [YYYY-MM-DD]: ")
	if err != nil {
		return err
	}

	p, err := a.ledger.CreatePayment(ctx, service.PaymentDraft{
		InvoiceID: inv.ID,
		Amount:    amount,
		Currency:  currency,
		Date:      date,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.prompter.out, "Added payment %s to invoice %s\n", p.ID, inv.ID)
	return nil
}

type listInvoicesAction struct {
	out    io.Writer
	ledger *service.LedgerService
}

func (a *listInvoicesAction) Name() string { return "List invoices" }

func (a *listInvoicesAction) Execute(ctx context.Context) error {
	printInvoices(a.out, a.ledger.ListInvoices(ctx))
	return nil
}

type listPaymentsAction struct {
	prompter *prompter
	ledger   *service.LedgerService
}

func (a *listPaymentsAction) Name() string { return "List payments for invoice" }

func (a *listPaymentsAction) Execute(ctx context.Context) error {
	inv, err := chooseInvoice(ctx, a.prompter, a.ledger)
	if err != nil {
		return err
	}

	printPayments(a.prompter.out, a.ledger.ListPayments(ctx, inv.ID))
	return nil
}

type settlementAction struct {
	prompter       *prompter
	ledger         *service.LedgerService
	reconciliation *service.ReconciliationService
}

func (a *settlementAction) Name() string { return "Calculate settlement status" }

func (a *settlementAction) Execute(ctx context.Context) error {
	inv, err := chooseInvoice(ctx, a.prompter, a.ledger)
	if err != nil {
		return err
	}

	result, err := a.reconciliation.ComputeInvoiceStatus(ctx, inv.ID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.prompter.out, "Invoice value: %.2f, paid total: %.2f, status: %s\n",
		result.InvoiceValue, result.PaidTotal, result.Status)
	return nil
}

type differenceAction struct {
	prompter       *prompter
	ledger         *service.LedgerService
	reconciliation *service.ReconciliationService
}

func (a *differenceAction) Name() string { return "Calculate exchange rate difference" }

func (a *differenceAction) Execute(ctx context.Context) error {
	inv, err := chooseInvoice(ctx, a.prompter, a.ledger)
	if err != nil {
		return err
	}

	payments := a.ledger.ListPayments(ctx, inv.ID)
	if len(payments) == 0 {
		fmt.Fprintln(a.prompter.out, "No payments for this invoice.")
		return nil
	}

	printPayments(a.prompter.out, payments)
	idx, err := a.prompter.readInt("Payment index: ")
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(payments) {
		return fmt.Errorf("payment index %d does not exist", idx)
	}

	result, err := a.reconciliation.ComputeExchangeRateDifference(ctx, payments[idx].ID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.prompter.out, "Exchange rate difference: %.2f\n", result.Difference)
	return nil
}

type exitAction struct{}

func (a *exitAction) Name() string { return "Exit" }

func (a *exitAction) Execute(ctx context.Context) error { return errExit }

// chooseInvoice lists invoices and asks for a positional index
func chooseInvoice(ctx context.Context, p *prompter, ledger *service.LedgerService) (*entity.Invoice, error) {
	printInvoices(p.out, ledger.ListInvoices(ctx))

	idx, err := p.readInt("Invoice index: ")
	if err != nil {
		return nil, err
	}

	return ledger.GetInvoice(ctx, idx)
}
