package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Mohsinsiddi/universe/internal/starknet"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ReceiptPoller fetches the current receipt of the watched transaction.
type ReceiptPoller func(ctx context.Context) (*starknet.Receipt, error)

type receiptMsg struct {
	receipt *starknet.Receipt
	err     error
}

type receiptSpinMsg struct{}

type receiptPollMsg struct{}

// ReceiptModel is the Bubble Tea model that follows one transaction until its
// receipt is final, the deadline passes or the user quits.
type ReceiptModel struct {
	Hash      string
	Operation string
	Receipt   *starknet.Receipt
	LastErr   string
	Polls     int
	TimedOut  bool
	Quitting  bool
	Frame     int

	poll     ReceiptPoller
	interval time.Duration
	deadline time.Time
}

// NewReceiptModel creates a model polling every interval until timeout elapses.
func NewReceiptModel(hash, operation string, poll ReceiptPoller, interval, timeout time.Duration) ReceiptModel {
	return ReceiptModel{
		Hash:      hash,
		Operation: operation,
		poll:      poll,
		interval:  interval,
		deadline:  time.Now().Add(timeout),
	}
}

func receiptSpinTick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(time.Time) tea.Msg { return receiptSpinMsg{} })
}

func (m ReceiptModel) fetch() tea.Cmd {
	poll := m.poll
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		r, err := poll(ctx)
		return receiptMsg{receipt: r, err: err}
	}
}

func (m ReceiptModel) Init() tea.Cmd { return tea.Batch(receiptSpinTick(), m.fetch()) }

func (m ReceiptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Quitting = true
			return m, tea.Quit
		}

	case receiptSpinMsg:
		m.Frame = (m.Frame + 1) % len(spinFrames)
		return m, receiptSpinTick()

	case receiptPollMsg:
		return m, m.fetch()

	case receiptMsg:
		m.Polls++
		if msg.err != nil {
			m.LastErr = trimErr(msg.err.Error())
		} else {
			m.LastErr = ""
			m.Receipt = msg.receipt
			if msg.receipt != nil && msg.receipt.Final() {
				return m, tea.Quit
			}
		}
		if time.Now().After(m.deadline) {
			m.TimedOut = true
			return m, tea.Quit
		}
		return m, tea.Tick(m.interval, func(time.Time) tea.Msg { return receiptPollMsg{} })
	}
	return m, nil
}

// Done reports whether the watched receipt reached a final status.
func (m ReceiptModel) Done() bool { return m.Receipt != nil && m.Receipt.Final() }

func (m ReceiptModel) View() string {
	if m.Quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(StyleTitle.Render(fmt.Sprintf("%s  ·  %s", m.Operation, TruncateAddr(m.Hash))) + "\n")

	switch {
	case m.Done() && m.Receipt.Succeeded():
		sb.WriteString(Success(fmt.Sprintf("succeeded in block #%d", m.Receipt.BlockNumber)) + "\n")
	case m.Done():
		sb.WriteString(Err("reverted: "+m.Receipt.RevertReason) + "\n")
	case m.TimedOut:
		sb.WriteString(Warn("gave up waiting for the receipt") + "\n")
	default:
		status := "waiting for receipt"
		if m.Receipt != nil && m.Receipt.FinalityStatus != "" {
			status = strings.ToLower(m.Receipt.FinalityStatus)
		}
		sb.WriteString(StyleInfo.Render(fmt.Sprintf("%s %s  (poll %d)", spinFrames[m.Frame], status, m.Polls)) + "\n")
		if m.LastErr != "" {
			sb.WriteString(padR(StyleMeta.Render("  last error:"), 14) + StyleError.Render(m.LastErr) + "\n")
		}
		sb.WriteString(StyleMeta.Render("  [ q ] stop watching") + "\n")
	}
	return sb.String()
}

// WatchReceipt runs the receipt model in the terminal and returns the final
// receipt. It returns starknet.ErrReceiptTimeout when the deadline passes and
// context.Canceled when the user quits.
func WatchReceipt(hash, operation string, poll ReceiptPoller, interval, timeout time.Duration) (*starknet.Receipt, error) {
	final, err := tea.NewProgram(NewReceiptModel(hash, operation, poll, interval, timeout)).Run()
	if err != nil {
		return nil, fmt.Errorf("receipt watch: %w", err)
	}
	m := final.(ReceiptModel)
	switch {
	case m.Done():
		return m.Receipt, nil
	case m.TimedOut:
		return nil, fmt.Errorf("%w: %s", starknet.ErrReceiptTimeout, hash)
	default:
		return nil, context.Canceled
	}
}

// padR pads s to visible width n (ANSI-safe using lipgloss.Width).
func padR(s string, n int) string {
	w := lipgloss.Width(s)
	if w >= n {
		return s
	}
	return s + strings.Repeat(" ", n-w)
}

func trimErr(s string) string {
	// Strip common noisy prefixes from RPC error messages.
	for _, prefix := range []string{"Post \"", "dial tcp", "connection refused", "context deadline"} {
		if idx := strings.Index(s, prefix); idx >= 0 {
			s = s[idx:]
			break
		}
	}
	if len(s) > 40 {
		return s[:40] + "…"
	}
	return s
}
