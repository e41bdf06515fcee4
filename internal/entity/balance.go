package entity

import (
	"bytes"
	"encoding/json"
)

// AssetID identifies a registered asset.
type AssetID uint32

// BalanceInfo pairs an asset with an amount. It is the result shape
// of every amm query. Payloads carrying unrecognized fields are
// rejected outright rather than silently dropped.
type BalanceInfo struct {
	Asset  AssetID `json:"asset"`
	Amount Amount  `json:"amount"`
}

func (b *BalanceInfo) UnmarshalJSON(data []byte) error {
	type plain BalanceInfo
	var p plain
	if err := strictUnmarshal(data, &p); err != nil {
		return err
	}
	*b = BalanceInfo(p)
	return nil
}

// BalanceRequest is the amount argument of the price queries.
// Unknown fields are a hard parse error so typos never pass silently.
type BalanceRequest struct {
	Amount Amount `json:"amount"`
}

func (r *BalanceRequest) UnmarshalJSON(data []byte) error {
	type plain BalanceRequest
	var p plain
	if err := strictUnmarshal(data, &p); err != nil {
		return err
	}
	*r = BalanceRequest(p)
	return nil
}

func strictUnmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
