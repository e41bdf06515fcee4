package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceInfo_MarshalUsesCamelCase(t *testing.T) {
	amount, err := AmountFromString("197")
	require.NoError(t, err)

	data, err := json.Marshal(BalanceInfo{Asset: 2, Amount: amount})
	require.NoError(t, err)
	assert.JSONEq(t, `{"asset":2,"amount":"197"}`, string(data))
}

func TestBalanceInfo_UnmarshalRejectsUnknownFields(t *testing.T) {
	var b BalanceInfo
	err := json.Unmarshal([]byte(`{"asset":2,"amount":"197","extra":1}`), &b)
	assert.Error(t, err)
}

func TestBalanceInfo_RoundTrip(t *testing.T) {
	amount, err := AmountFromString("12.5")
	require.NoError(t, err)
	in := BalanceInfo{Asset: 7, Amount: amount}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out BalanceInfo
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in.Asset, out.Asset)
	assert.True(t, in.Amount.Equal(out.Amount.Decimal))
}

func TestBalanceRequest_Unmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "amount as string",
			input: `{"amount":"10"}`,
			want:  "10",
		},
		{
			name:  "amount as number",
			input: `{"amount":10}`,
			want:  "10",
		},
		{
			name:    "unknown field rejected",
			input:   `{"amount":"10","bogus":true}`,
			wantErr: true,
		},
		{
			name:    "negative amount rejected",
			input:   `{"amount":"-10"}`,
			wantErr: true,
		},
		{
			name:    "non-numeric amount rejected",
			input:   `{"amount":"ten"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r BalanceRequest
			err := json.Unmarshal([]byte(tt.input), &r)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Amount.String())
		})
	}
}
