package spec

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/pingcap/log"
	"go.uber.org/zap"
)

const (
	lowercaseChars    = "abcdefghijklmnopqrstuvwxyz"
	alphanumericChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// randRange returns a uniform integer in [lo, hi], bounds inclusive.
func randRange(rng *rand.Rand, lo, hi int64) int64 {
	return lo + rng.Int63n(hi-lo+1)
}

// randString fills a fresh buffer of the given length from the charset.
func randString(rng *rand.Rand, length int, charset string) string {
	b := make([]byte, length)
	rng.Read(b)
	for i := range b {
		b[i] = charset[int(b[i])%len(charset)]
	}
	return string(b)
}

func pow10(p int) int64 {
	res := int64(1)
	for i := 0; i < p; i++ {
		res *= 10
	}
	return res
}

// generateBigInt covers [2^32, 2^64). The lower boundary deliberately
// overlaps INT's upper boundary.
func generateBigInt(rng *rand.Rand) string {
	lo := uint64(1) << 32
	span := -lo // 2^64 - 2^32 in uint64 arithmetic
	return strconv.FormatUint(lo+rng.Uint64()%span, 10)
}

func generateDecimal(c *ConstraintSet, rng *rand.Rand) string {
	intDigits := c.DecimalPrecision - c.DecimalScale
	lo := float64(pow10(intDigits - 1))
	hi := float64(pow10(intDigits) - 1)
	v := lo + rng.Float64()*(hi-lo)
	return strconv.FormatFloat(v, 'f', c.DecimalScale, 64)
}

func generateDate(c *ConstraintSet, rng *rand.Rand) string {
	days := int(randRange(rng, 1, int64(c.DaysAgo)))
	return time.Now().AddDate(0, 0, -days).Format(c.DateFormat)
}

func generateTimestamp(c *ConstraintSet, rng *rand.Rand) string {
	offset := time.Duration(randRange(rng, 1, int64(c.DaysAgo)))*24*time.Hour +
		time.Duration(randRange(rng, 1, 23))*time.Hour +
		time.Duration(randRange(rng, 1, 59))*time.Minute +
		time.Duration(randRange(rng, 1, 59))*time.Second
	return time.Now().Add(-offset).Format(c.TimestampFormat)
}

// GenerateField produces one random value of the correct shape for the
// column type. It is a pure function of the type tag, the constraint set and
// the random source. The integer ranges are inclusive and SMALLINT, INT and
// BIGINT share their boundary values with the neighbouring type on purpose.
func GenerateField(t ColumnType, c *ConstraintSet, rng *rand.Rand) string {
	switch t {
	case TypeTinyInt:
		return strconv.FormatInt(randRange(rng, 1, 1<<8), 10)
	case TypeSmallInt:
		return strconv.FormatInt(randRange(rng, 1<<8, 1<<16), 10)
	case TypeInt:
		return strconv.FormatInt(randRange(rng, 1<<16, 1<<32), 10)
	case TypeBigInt:
		return generateBigInt(rng)
	case TypeFloat:
		v := 1 + rng.Float64()*99
		return strconv.FormatFloat(v, 'f', int(randRange(rng, 1, 6)), 64)
	case TypeDouble:
		v := 1 + rng.Float64()*999
		return strconv.FormatFloat(v, 'f', int(randRange(rng, 7, 15)), 64)
	case TypeDecimal:
		return generateDecimal(c, rng)
	case TypeVarchar:
		length := int(randRange(rng, int64(c.VarcharMin), int64(c.VarcharMax)))
		return randString(rng, length, lowercaseChars)
	case TypeText:
		length := int(randRange(rng, int64(c.TextMin), int64(c.TextMax)))
		return randString(rng, length, alphanumericChars)
	case TypeDate:
		return generateDate(c, rng)
	case TypeTimestamp:
		return generateTimestamp(c, rng)
	}
	log.Panic("unknown column type", zap.String("type", string(t)))
	return ""
}

// AppendRow appends one delimiter-separated row for the schema to buf and
// returns the extended buffer.
func AppendRow(
	buf []byte,
	schema []ColumnType,
	c *ConstraintSet,
	rng *rand.Rand,
	delimiter, endline []byte,
) []byte {
	for i, t := range schema {
		if i > 0 {
			buf = append(buf, delimiter...)
		}
		buf = append(buf, GenerateField(t, c, rng)...)
	}
	return append(buf, endline...)
}
