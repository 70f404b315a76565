package health

import "context"

type DBPinger interface {
	Ping(ctx context.Context) error
}

type DocumentCounter interface {
	Count(ctx context.Context) (int, error)
}

type LLMPinger interface {
	Ping(ctx context.Context) error
}
