package pubsub2

import (
	"context"

	"ledger/events"
)

func (p *PubSubClient) PublishTxSubmit(
	ctx context.Context,
	msg events.TxSubmitRequest,
) error {
	return p.PublishJSON(ctx, "tx.submit", msg)
}

func (p *PubSubClient) PublishTransfer(
	ctx context.Context,
	msg events.TransferRequest,
) error {
	return p.PublishJSON(ctx, "tx.transfer", msg)
}

func (p *PubSubClient) PublishEpochResult(
	ctx context.Context,
	msg events.EpochResult,
) error {
	return p.PublishJSON(ctx, "epoch.result", msg)
}
