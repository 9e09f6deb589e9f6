package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"invoicefx/internal/application/service"
	"invoicefx/internal/domain/entity"
	"invoicefx/internal/platform/config"
)

// errExit signals that the user chose to leave the menu.
var errExit = errors.New("exit requested")

// Action is a single selectable console action
type Action interface {
	Name() string
	Execute(ctx context.Context) error
}

// Menu drives the interactive console loop
type Menu struct {
	actions []Action
	in      *bufio.Scanner
	out     io.Writer
}

// NewMenu builds the menu with all available actions
func NewMenu(in io.Reader, out io.Writer, cfg *config.Config, ledger *service.LedgerService, reconciliation *service.ReconciliationService) *Menu {
	m := &Menu{
		in:  bufio.NewScanner(in),
		out: out,
	}

	p := &prompter{in: m.in, out: out}

	m.actions = []Action{
		&addInvoiceAction{prompter: p, cfg: cfg, ledger: ledger},
		&addPaymentAction{prompter: p, cfg: cfg, ledger: ledger},
		&listInvoicesAction{out: out, ledger: ledger},
		&listPaymentsAction{prompter: p, ledger: ledger},
		&settlementAction{prompter: p, ledger: ledger, reconciliation: reconciliation},
		&differenceAction{prompter: p, ledger: ledger, reconciliation: reconciliation},
		&exitAction{},
	}

	return m
}

// Run loops until the exit action is chosen or input ends
func (m *Menu) Run(ctx context.Context) error {
	for {
		fmt.Fprintln(m.out)
		for i, action := range m.actions {
			fmt.Fprintf(m.out, "%d. %s\n", i+1, action.Name())
		}
		fmt.Fprint(m.out, "Choose an action: ")

		if !m.in.Scan() {
			return m.in.Err()
		}

		choice, err := strconv.Atoi(strings.TrimSpace(m.in.Text()))
		if err != nil || choice < 1 || choice > len(m.actions) {
			fmt.Fprintln(m.out, "Invalid choice.")
			continue
		}

		if err := m.actions[choice-1].Execute(ctx); err != nil {
			if errors.Is(err, errExit) {
				return nil
			}
			fmt.Fprintf(m.out, "Error: %v\n", err)
		}
	}
}

// prompter reads typed values from the console
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func (p *prompter) readString(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func (p *prompter) readFloat(prompt string) (float64, error) {
	s, err := p.readString(prompt)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return v, nil
}

func (p *prompter) readDate(prompt string) (time.Time, error) {
	s, err := p.readString(prompt)
	if err != nil {
		return time.Time{}, err
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return d, nil
}

func (p *prompter) readInt(prompt string) (int, error) {
	s, err := p.readString(prompt)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", s)
	}
	return v, nil
}

// availableCurrencies renders the allow-list plus the local currency
func availableCurrencies(cfg *config.Config) string {
	codes := strings.Join(cfg.Currencies, ", ")
	if !strings.Contains(codes, cfg.LocalCurrency) {
		codes += ", " + cfg.LocalCurrency
	}
	return codes
}

func printInvoices(out io.Writer, invoices []entity.Invoice) {
	if len(invoices) == 0 {
		fmt.Fprintln(out, "No invoices.")
		return
	}
	fmt.Fprintln(out, "Index - <id | amount | currency | date | status>")
	for i, inv := range invoices {
		fmt.Fprintf(out, "%d - <%s | %.2f | %s | %s | %s>\n",
			i, inv.ID, inv.Amount, inv.Currency, inv.Date.Format("2006-01-02"), inv.Status)
	}
}

func printPayments(out io.Writer, payments []entity.Payment) {
	if len(payments) == 0 {
		fmt.Fprintln(out, "No payments for this invoice.")
		return
	}
	fmt.Fprintln(out, "Index - <id | amount | currency | date>")
	for i, p := range payments {
		fmt.Fprintf(out, "%d - <%s | %.2f | %s | %s>\n",
			i, p.ID, p.Amount, p.Currency, p.Date.Format("2006-01-02"))
	}
}
