package llm

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	llmclient "zonetriage/internal/llm/client"
	"zonetriage/internal/tester"
)

// fastClient returns immediately.
type fastClient struct{}

func (f *fastClient) Name() string                { return "fast" }
func (f *fastClient) Close() error                { return nil }
func (f *fastClient) CountTokens(text string) int { return llmclient.CountTokens(text) }
func (f *fastClient) TokenCapacity() int          { return 1024 }
func (f *fastClient) Complete(ctx context.Context, system, user string) (string, error) {
	return "ok", nil
}

// scriptedClient returns errs[i] on the i-th call, then "done".
type scriptedClient struct {
	fastClient
	errs  []error
	calls int
}

func (s *scriptedClient) Complete(ctx context.Context, system, user string) (string, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	return "done", nil
}

type blockingClient struct{ fastClient }

func (b *blockingClient) Complete(ctx context.Context, system, user string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestRetryRecoversFromTransientErrors(t *testing.T) {
	inner := &scriptedClient{errs: []error{errors.New("a"), errors.New("b")}}
	cli := Retry(3, time.Millisecond)(inner)
	out, err := cli.Complete(context.Background(), "s", "u")
	tester.NoErr(t, err)
	tester.Eq(t, out, "done")
	tester.Eq(t, inner.calls, 3)
}

func TestRetryStopsOnPermanentError(t *testing.T) {
	perm := llmclient.NewPermanentError(errors.New("unauthorized"))
	inner := &scriptedClient{errs: []error{perm, nil}}
	_, err := Retry(5, time.Millisecond)(inner).Complete(context.Background(), "s", "u")
	tester.ErrIs(t, err, perm)
	tester.Eq(t, inner.calls, 1)
}

func TestRetryWaitsForRetryAfter(t *testing.T) {
	hinted := &llmclient.RetryAfterError{Err: errors.New("429"), After: 80 * time.Millisecond}
	inner := &scriptedClient{errs: []error{hinted}}
	start := time.Now()
	out, err := Retry(2, time.Millisecond)(inner).Complete(context.Background(), "s", "u")
	tester.NoErr(t, err)
	tester.Eq(t, out, "done")
	tester.Eq(t, inner.calls, 2)
	tester.True(t, time.Since(start) >= 80*time.Millisecond, "retry must wait at least the provider hint, got %v", time.Since(start))
}

func TestRetryAfterHonorsContext(t *testing.T) {
	hinted := &llmclient.RetryAfterError{Err: errors.New("429"), After: time.Hour}
	inner := &scriptedClient{errs: []error{hinted}}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err := Retry(2, time.Millisecond)(inner).Complete(ctx, "s", "u")
	tester.ErrIs(t, err, context.DeadlineExceeded)
	tester.Eq(t, inner.calls, 1)
}

func TestRetrySingleAttemptMakesOneCall(t *testing.T) {
	boom := errors.New("boom")
	inner := &scriptedClient{errs: []error{boom}}
	_, err := Retry(1, time.Hour)(inner).Complete(context.Background(), "s", "u")
	tester.ErrIs(t, err, boom)
	tester.Eq(t, inner.calls, 1)
}

func TestWithTimeoutBoundsHungCall(t *testing.T) {
	cli := WithTimeout(30 * time.Millisecond)(&blockingClient{})
	start := time.Now()
	_, err := cli.Complete(context.Background(), "s", "u")
	tester.ErrIs(t, err, context.DeadlineExceeded)
	tester.True(t, time.Since(start) < time.Second, "timeout should fire promptly")
}

func TestWithTimeoutDisabled(t *testing.T) {
	inner := &fastClient{}
	tester.True(t, WithTimeout(0)(inner) == llmclient.LLMClient(inner), "zero timeout returns inner client")
}

func TestWithLoggingRecordsRequestAndError(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)
	inner := &scriptedClient{errs: []error{errors.New("upstream down")}}
	cli := Wrap(inner, WithLogging(logger))

	_, err := cli.Complete(context.Background(), "sys", "user")
	tester.True(t, err != nil, "error should pass through")
	out := buf.String()
	tester.True(t, strings.Contains(out, "LLM request (fast): 7 bytes"), "request line missing: %s", out)
	tester.True(t, strings.Contains(out, "upstream down"), "error line missing: %s", out)
}

func TestWrapOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next llmclient.LLMClient) llmclient.LLMClient {
			return &orderClient{LLMClient: next, name: name, order: &order}
		}
	}
	cli := Wrap(&fastClient{}, mark("A"), nil, mark("B"))
	_, err := cli.Complete(context.Background(), "s", "u")
	tester.NoErr(t, err)
	tester.Eq(t, order, []string{"A", "B"})
}

type orderClient struct {
	llmclient.LLMClient
	name  string
	order *[]string
}

func (o *orderClient) Complete(ctx context.Context, system, user string) (string, error) {
	*o.order = append(*o.order, o.name)
	return o.LLMClient.Complete(ctx, system, user)
}
