package scribe_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/KimNorgaard/go-vcard"
	"github.com/KimNorgaard/go-vcard/diag"
	"github.com/KimNorgaard/go-vcard/scribe"
)

func TestDateParse(t *testing.T) {
	tests := []struct {
		value    string
		want     time.Time
		withTime bool
	}{
		{"19960415", time.Date(1996, 4, 15, 0, 0, 0, 0, time.UTC), false},
		{"1996-04-15", time.Date(1996, 4, 15, 0, 0, 0, 0, time.UTC), false},
		{"19530415T102200Z", time.Date(1953, 4, 15, 10, 22, 0, 0, time.UTC), true},
		{"1953-04-15T10:22:00", time.Date(1953, 4, 15, 10, 22, 0, 0, time.UTC), true},
		{"1953-04-15T05:22:00-05:00", time.Date(1953, 4, 15, 10, 22, 0, 0, time.UTC), true},
		{"19530415T052200-0500", time.Date(1953, 4, 15, 10, 22, 0, 0, time.UTC), true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			d := decode(t, "BDAY", vcard.V3_0, tt.value).(*vcard.DateOrTime)
			require.True(t, tt.want.Equal(d.Date), d.Date.String())
			require.Equal(t, tt.withTime, d.HasTime)
		})
	}
}

func TestDatePartial(t *testing.T) {
	u := vcard.Unset
	tests := []struct {
		value string
		want  vcard.PartialDate
	}{
		{"--0412", vcard.PartialDate{Year: u, Month: 4, Day: 12, Hour: u, Minute: u, Second: u}},
		{"--04-12", vcard.PartialDate{Year: u, Month: 4, Day: 12, Hour: u, Minute: u, Second: u}},
		{"1985", vcard.PartialDate{Year: 1985, Month: u, Day: u, Hour: u, Minute: u, Second: u}},
		{"1985-04", vcard.PartialDate{Year: 1985, Month: 4, Day: u, Hour: u, Minute: u, Second: u}},
		{"---12", vcard.PartialDate{Year: u, Month: u, Day: 12, Hour: u, Minute: u, Second: u}},
		{"T10", vcard.PartialDate{Year: u, Month: u, Day: u, Hour: 10, Minute: u, Second: u}},
		{"T1022Z", vcard.PartialDate{Year: u, Month: u, Day: u, Hour: 10, Minute: 22, Second: u, Offset: "Z"}},
		{"T-2200", vcard.PartialDate{Year: u, Month: u, Day: u, Hour: u, Minute: 22, Second: 0}},
		{"--0412T0800-0500", vcard.PartialDate{Year: u, Month: 4, Day: 12, Hour: 8, Minute: 0, Second: u, Offset: "-0500"}},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			res, ctx := parse(t, "BDAY", vcard.V4_0, tt.value)
			require.Equal(t, scribe.OK, res.Outcome)
			require.Empty(t, ctx.Warnings())
			d := res.Property.(*vcard.DateOrTime)
			require.NotNil(t, d.Partial)
			require.Equal(t, tt.want, *d.Partial)
		})
	}
}

func TestDatePartialWrite(t *testing.T) {
	p := vcard.NewPartialDate()
	p.Month, p.Day = 4, 12
	d := vcard.NewPartial(vcard.KindBirthday, p)

	require.Equal(t, "--0412", mustWrite(t, vcard.V4_0, d).value)

	jv, err := scribe.WriteJSON(registry.ForProperty(d), d, &scribe.WriteContext{Version: vcard.V4_0})
	require.NoError(t, err)
	require.Equal(t, scribe.JSONValue{"--04-12"}, jv)

	_, err = write(t, vcard.V3_0, d, nil)
	require.True(t, scribe.IsSkip(err))
}

func TestDateText(t *testing.T) {
	t.Run("explicit", func(t *testing.T) {
		res, ctx := parse(t, "BDAY", vcard.V4_0, "circa 1800", "VALUE", "text")
		require.Equal(t, scribe.OK, res.Outcome)
		require.Empty(t, ctx.Warnings())
		require.Equal(t, "circa 1800", res.Property.(*vcard.DateOrTime).Text)
	})
	t.Run("unparseable in 4.0", func(t *testing.T) {
		res, ctx := parse(t, "BDAY", vcard.V4_0, "circa 1800")
		require.Equal(t, scribe.OK, res.Outcome)
		require.True(t, ctx.Warnings().Has(diag.CodeUnparseableDate))
		require.Equal(t, "circa 1800", res.Property.(*vcard.DateOrTime).Text)
	})
	for _, v := range []vcard.Version{vcard.V2_1, vcard.V3_0} {
		t.Run("unparseable in "+v.String(), func(t *testing.T) {
			for _, value := range []string{"circa 1800", "not a date"} {
				res, ctx := parse(t, "BDAY", v, value)
				require.Equal(t, scribe.Failed, res.Outcome, value)
				require.Equal(t, diag.CodeParseFailed, res.Code, value)
				require.Nil(t, res.Property, value)
				require.Empty(t, ctx.Warnings(), value)
			}
		})
	}
	t.Run("written", func(t *testing.T) {
		d := vcard.NewDateText(vcard.KindBirthday, "circa 1800")
		w := mustWrite(t, vcard.V4_0, d)
		require.Equal(t, "circa 1800", w.value)
		require.Equal(t, vcard.TypeText, w.dataType)

		_, err := write(t, vcard.V2_1, d, nil)
		require.True(t, scribe.IsSkip(err))
		var se *scribe.SkipError
		require.ErrorAs(t, err, &se)
		require.Equal(t, diag.CodeTextDateUnsupported, se.Code)
	})
}

func TestDateWrite(t *testing.T) {
	at := time.Date(1953, 4, 15, 5, 22, 0, 0, time.FixedZone("EST", -5*3600))
	d := vcard.NewDate(vcard.KindBirthday, at, true)
	tests := []struct {
		v     vcard.Version
		value string
		dt    vcard.DataType
	}{
		{vcard.V2_1, "19530415T102200Z", vcard.TypeDate},
		{vcard.V3_0, "1953-04-15T10:22:00Z", vcard.TypeDateTime},
		{vcard.V4_0, "19530415T102200Z", vcard.TypeDateAndOrTime},
	}
	for _, tt := range tests {
		t.Run(tt.v.String(), func(t *testing.T) {
			w := mustWrite(t, tt.v, d)
			require.Equal(t, tt.value, w.value)
			require.Equal(t, tt.dt, w.dataType)
		})
	}

	day := vcard.NewDate(vcard.KindAnniversary, time.Date(2001, 9, 9, 0, 0, 0, 0, time.UTC), false)
	require.Equal(t, "20010909", mustWrite(t, vcard.V4_0, day).value)
	require.Equal(t, "2001-09-09", mustWrite(t, vcard.V3_0, day).value)
}

func TestTimestamp(t *testing.T) {
	want := time.Date(1995, 10, 31, 22, 27, 10, 0, time.UTC)
	for _, value := range []string{"19951031T222710Z", "1995-10-31T22:27:10Z", "1995-10-31T17:27:10-05:00"} {
		ts := decode(t, "REV", vcard.V3_0, value).(*vcard.Timestamp)
		require.True(t, want.Equal(ts.Time.Time), value)
	}

	rev := vcard.NewRevision(want)
	require.Equal(t, "19951031T222710Z", mustWrite(t, vcard.V4_0, rev).value)
	require.Equal(t, "1995-10-31T22:27:10Z", mustWrite(t, vcard.V3_0, rev).value)

	res, _ := parse(t, "REV", vcard.V3_0, "yesterday")
	require.Equal(t, scribe.Failed, res.Outcome)
	require.Equal(t, diag.CodeBadTimestamp, res.Code)
}
