package contract

import (
	"context"
	"fmt"

	"chaintask/internal/notify"
)

// Messages shown while a transaction is submitted.
const (
	MsgTxSending = "Sending transaction..."
	MsgTxSuccess = "Transaction finalized"
	MsgTxFailed  = "Transaction failed"
)

// TransactWithNotify submits tx through conn and reports progress and the
// outcome to n. The error, if any, is returned unchanged.
func TransactWithNotify(ctx context.Context, conn Connection, n notify.Notifier, tx Tx) (TxResult, error) {
	n.Loading(MsgTxSending)

	res, err := conn.Transact(ctx, tx)
	if err != nil {
		n.Error(fmt.Sprintf("%s: %v", MsgTxFailed, err))
		return TxResult{}, err
	}

	n.Success(MsgTxSuccess)
	return res, nil
}
