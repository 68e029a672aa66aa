// Package shell implements the interactive text menu over a ledger.
//
// It owns all prompting and parsing; the ledger only ever sees parsed values.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/amirasaad/simplebank/pkg/domain/account"
	"github.com/amirasaad/simplebank/pkg/dto"
	"github.com/amirasaad/simplebank/pkg/ledger"
	"github.com/fatih/color"
)

// Menu options.
const (
	OptionCreate = iota + 1
	OptionBalance
	OptionDeposit
	OptionWithdraw
	OptionHistory
	OptionExit
	OptionList
)

var menu = []string{
	"1. Create Account",
	"2. Check Balance",
	"3. Deposit",
	"4. Withdraw",
	"5. View Transaction History",
	"6. Exit",
	"7. List Accounts",
}

const defaultPrompt = "Choose an option: "

var (
	// errEOF signals that input ended while a prompt was waiting.
	errEOF  = errors.New("end of input")
	errExit = errors.New("exit")
)

// Shell drives one interactive session.
type Shell struct {
	ledger *ledger.Ledger
	in     *bufio.Scanner
	out    io.Writer
	prompt string
	logger *slog.Logger

	success *color.Color
	failure *color.Color
	heading *color.Color
}

// Option configures a Shell.
type Option func(*Shell)

// WithPrompt overrides the menu prompt.
func WithPrompt(prompt string) Option {
	return func(s *Shell) {
		if prompt != "" {
			s.prompt = prompt
		}
	}
}

// WithColor forces colored output on or off.
func WithColor(enabled bool) Option {
	return func(s *Shell) {
		for _, c := range []*color.Color{s.success, s.failure, s.heading} {
			if enabled {
				c.EnableColor()
			} else {
				c.DisableColor()
			}
		}
	}
}

// WithLogger sets the logger used for unexpected errors.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Shell) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Shell reading from in and writing to out.
func New(l *ledger.Ledger, in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		ledger:  l,
		in:      bufio.NewScanner(in),
		out:     out,
		prompt:  defaultPrompt,
		logger:  slog.Default(),
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
		heading: color.New(color.FgCyan, color.Bold),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run shows the menu until the user exits, input ends or ctx is cancelled.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, line := range menu {
			s.println(line)
		}
		choice, err := s.readLine(s.prompt)
		if errors.Is(err, errEOF) {
			s.println("Exiting...")
			return nil
		}
		if err != nil {
			return err
		}

		err = s.dispatch(ctx, choice)
		switch {
		case errors.Is(err, errExit), errors.Is(err, errEOF):
			s.println("Exiting...")
			return nil
		case err != nil:
			return err
		}
	}
}

func (s *Shell) dispatch(ctx context.Context, choice string) error {
	n, err := strconv.Atoi(strings.TrimSpace(choice))
	if err != nil {
		n = 0
	}
	switch n {
	case OptionCreate:
		return s.createAccount(ctx)
	case OptionBalance:
		return s.checkBalance(ctx)
	case OptionDeposit:
		return s.deposit(ctx)
	case OptionWithdraw:
		return s.withdraw(ctx)
	case OptionHistory:
		return s.viewHistory(ctx)
	case OptionExit:
		return errExit
	case OptionList:
		s.listAccounts(ctx)
		return nil
	default:
		s.fail("Invalid option. Please try again.")
		return nil
	}
}

func (s *Shell) createAccount(ctx context.Context) error {
	var req dto.AccountCreate
	var err error
	if req.ID, err = s.readLine("Enter Account ID: "); err != nil {
		return err
	}
	if req.HolderName, err = s.readLine("Enter Account Holder Name: "); err != nil {
		return err
	}
	if req.InitialBalance, err = s.readLine("Enter Initial Balance: "); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		s.reportInput(err)
		return nil
	}
	balance, err := req.Balance()
	if err != nil {
		s.fail("Invalid number.")
		return nil
	}
	if _, err := s.ledger.CreateAccount(ctx, req.ID, req.HolderName, balance); err != nil {
		s.report(err, "")
		return nil
	}
	s.ok("Account created successfully.")
	return nil
}

func (s *Shell) checkBalance(ctx context.Context) error {
	id, found, err := s.findAccount(ctx)
	if err != nil || !found {
		return err
	}
	balance, err := s.ledger.CheckBalance(ctx, id)
	if err != nil {
		s.report(err, "")
		return nil
	}
	s.println("Current balance: " + balance.String())
	return nil
}

func (s *Shell) deposit(ctx context.Context) error {
	in, ok, err := s.readAmount(ctx, "Enter deposit amount: ")
	if err != nil || !ok {
		return err
	}
	amount, err := in.Money()
	if err != nil {
		s.fail("Invalid number.")
		return nil
	}
	if _, err := s.ledger.Deposit(ctx, in.AccountID, amount); err != nil {
		s.report(err, "Invalid deposit amount.")
		return nil
	}
	s.ok("Deposit successful.")
	return nil
}

func (s *Shell) withdraw(ctx context.Context) error {
	in, ok, err := s.readAmount(ctx, "Enter withdrawal amount: ")
	if err != nil || !ok {
		return err
	}
	amount, err := in.Money()
	if err != nil {
		s.fail("Invalid number.")
		return nil
	}
	if _, err := s.ledger.Withdraw(ctx, in.AccountID, amount); err != nil {
		s.report(err, "Invalid withdrawal amount.")
		return nil
	}
	s.ok("Withdrawal successful.")
	return nil
}

func (s *Shell) viewHistory(ctx context.Context) error {
	id, found, err := s.findAccount(ctx)
	if err != nil || !found {
		return err
	}
	entries, err := s.ledger.History(ctx, id)
	if err != nil {
		s.report(err, "")
		return nil
	}
	s.heading.Fprintln(s.out, "Transaction History:") //nolint:errcheck
	for _, line := range account.Lines(entries) {
		s.println(line)
	}
	return nil
}

func (s *Shell) listAccounts(ctx context.Context) {
	accounts := s.ledger.Accounts(ctx)
	if len(accounts) == 0 {
		s.println("No accounts.")
		return
	}
	s.heading.Fprintln(s.out, "Accounts:") //nolint:errcheck
	for _, acc := range accounts {
		r := dto.ToAccountRead(acc)
		s.println(fmt.Sprintf("%s\t%s\t%s", r.ID, r.HolderName, r.Balance))
	}
}

// findAccount prompts for an account ID and reports whether it exists.
func (s *Shell) findAccount(ctx context.Context) (string, bool, error) {
	id, err := s.readLine("Enter Account ID: ")
	if err != nil {
		return "", false, err
	}
	if _, err := s.ledger.FindAccount(ctx, id); err != nil {
		s.report(err, "")
		return id, false, nil
	}
	return id, true, nil
}

// readAmount resolves the account first, then prompts for the amount.
func (s *Shell) readAmount(ctx context.Context, prompt string) (dto.AmountInput, bool, error) {
	id, found, err := s.findAccount(ctx)
	if err != nil || !found {
		return dto.AmountInput{}, false, err
	}
	raw, err := s.readLine(prompt)
	if err != nil {
		return dto.AmountInput{}, false, err
	}
	in := dto.AmountInput{AccountID: id, Amount: raw}
	if err := in.Validate(); err != nil {
		s.reportInput(err)
		return dto.AmountInput{}, false, nil
	}
	return in, true, nil
}

// report prints the user-facing message for a ledger error. invalidAmount is
// the operation specific text for account.ErrInvalidAmount.
func (s *Shell) report(err error, invalidAmount string) {
	switch {
	case errors.Is(err, account.ErrAccountNotFound):
		s.fail("Account not found.")
	case errors.Is(err, account.ErrInvalidAmount) && invalidAmount != "":
		s.fail(invalidAmount)
	case errors.Is(err, account.ErrInsufficientFunds):
		s.fail("Insufficient funds.")
	case errors.Is(err, account.ErrNegativeInitialBalance):
		s.fail("Initial balance cannot be negative.")
	case errors.Is(err, account.ErrDuplicateID):
		s.fail("Account ID already exists. Please choose a different ID.")
	default:
		s.logger.Error("unexpected ledger error", "error", err)
		s.fail("Operation failed: " + err.Error())
	}
}

func (s *Shell) reportInput(err error) {
	var verr *dto.ValidationError
	if errors.As(err, &verr) {
		if strings.HasSuffix(verr.Message, "must be a number") {
			s.fail("Invalid number.")
			return
		}
		s.fail(verr.Message + ".")
		return
	}
	s.fail(err.Error())
}

func (s *Shell) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt) //nolint:errcheck
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		fmt.Fprintln(s.out) //nolint:errcheck
		return "", errEOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Shell) println(line string) {
	fmt.Fprintln(s.out, line) //nolint:errcheck
}

func (s *Shell) ok(msg string) {
	s.success.Fprintln(s.out, msg) //nolint:errcheck
}

func (s *Shell) fail(msg string) {
	s.failure.Fprintln(s.out, msg) //nolint:errcheck
}
