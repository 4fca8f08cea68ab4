package mpesa

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPhoneNumber(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "local with leading zero", input: "0712345678", want: "254712345678"},
		{name: "bare nine digits", input: "712345678", want: "254712345678"},
		{name: "full international", input: "254712345678", want: "254712345678"},
		{name: "with plus and spaces", input: "+254 712 345 678", want: "254712345678"},
		{name: "landline prefix rejected", input: "0212345678", wantErr: true},
		{name: "too short", input: "07123", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatPhoneNumber(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimestamp(t *testing.T) {
	ts := Timestamp(time.Date(2026, 3, 7, 9, 5, 2, 0, time.UTC))
	assert.Equal(t, "20260307090502", ts)
}

func TestPassword(t *testing.T) {
	// base64("174379" + "key" + "20260307090502")
	got := Password("174379", "key", "20260307090502")
	assert.Equal(t, "MTc0Mzc5a2V5MjAyNjAzMDcwOTA1MDI=", got)
}

func TestValidateSTKPushRequest(t *testing.T) {
	assert.NoError(t, ValidateSTKPushRequest(&STKPushRequest{PhoneNumber: "0712345678", Amount: 100}))

	err := ValidateSTKPushRequest(&STKPushRequest{PhoneNumber: "", Amount: 100})
	require.Error(t, err)

	err = ValidateSTKPushRequest(&STKPushRequest{PhoneNumber: "0712345678", Amount: 0.5})
	require.Error(t, err)

	err = ValidateSTKPushRequest(&STKPushRequest{PhoneNumber: "0712345678", Amount: 150001})
	require.Error(t, err)
}
