package application

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Daeruvan/TicketService/internal/domain/hold"
)

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"ドメインのエラーと結合", fmt.Errorf("%w: %w", ErrInvalidArgument, hold.ErrInvalidEmail), ErrInvalidArgument},
		{"ラップされた種別", fmt.Errorf("予約に失敗: %w", ErrNotFound), ErrNotFound},
		{"種別なし", hold.ErrHoldNotActive, nil},
		{"nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Kind(tt.err))
		})
	}
}
