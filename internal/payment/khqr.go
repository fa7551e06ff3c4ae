package payment

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// EMV-style tag ids used in a KHQR payload.
const (
	tagPayloadFormat   = "00"
	tagInitiation      = "01"
	tagMerchantAccount = "29"
	tagMCC             = "52"
	tagCurrency        = "53"
	tagAmount          = "54"
	tagCountry         = "58"
	tagMerchantName    = "59"
	tagMerchantCity    = "60"
	tagAdditionalData  = "62"
	tagCRC             = "63"
)

var currencyNumeric = map[string]string{
	"KHR": "116",
	"USD": "840",
}

// buildPayload assembles the tag-length-value string a wallet scans.
// Dynamic initiation, merchant-presented, CRC-16/CCITT checksum.
func buildPayload(req Request) (string, error) {
	numeric, ok := currencyNumeric[req.Currency]
	if !ok {
		return "", fmt.Errorf("unsupported currency %q", req.Currency)
	}

	var b strings.Builder
	b.WriteString(tlv(tagPayloadFormat, "01"))
	b.WriteString(tlv(tagInitiation, "12")) // dynamic QR, amount embedded
	b.WriteString(tlv(tagMerchantAccount, tlv("00", req.AccountRef)))
	b.WriteString(tlv(tagMCC, "5999"))
	b.WriteString(tlv(tagCurrency, numeric))
	b.WriteString(tlv(tagAmount, req.Amount.String()))
	b.WriteString(tlv(tagCountry, "KH"))
	b.WriteString(tlv(tagMerchantName, clip(req.MerchantName, 25)))
	b.WriteString(tlv(tagMerchantCity, clip(req.MerchantCity, 15)))

	var extra strings.Builder
	extra.WriteString(tlv("01", clip(req.BillNumber, 25)))
	if req.PhoneRef != "" {
		extra.WriteString(tlv("02", clip(req.PhoneRef, 25)))
	}
	if req.StoreLabel != "" {
		extra.WriteString(tlv("03", clip(req.StoreLabel, 25)))
	}
	if req.TerminalLabel != "" {
		extra.WriteString(tlv("07", clip(req.TerminalLabel, 25)))
	}
	b.WriteString(tlv(tagAdditionalData, extra.String()))

	payload := b.String() + tagCRC + "04"
	return payload + crc16(payload), nil
}

func tlv(id, value string) string {
	return fmt.Sprintf("%s%02d%s", id, len(value), value)
}

func clip(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

// crc16 is CRC-16/CCITT-FALSE, the checksum the provider verifies.
func crc16(s string) string {
	crc := uint16(0xFFFF)
	for _, c := range []byte(s) {
		crc ^= uint16(c) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return strings.ToUpper(fmt.Sprintf("%04x", crc))
}

// requestID derives the stable poll identifier for a payload.
func requestID(payload string) string {
	sum := md5.Sum([]byte(payload))
	return hex.EncodeToString(sum[:])
}
