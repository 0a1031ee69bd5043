package formbody_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DEVYESH-1211/campus-events/internal/lib/formbody"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    formbody.Form
		wantErr bool
	}{
		{
			name: "simple fields",
			body: "email=a%40b.com&password=secret",
			want: formbody.Form{"email": "a@b.com", "password": "secret"},
		},
		{
			name: "plus decodes to space",
			body: "event_name=Tech+Fest+2026&venue=Main+Hall",
			want: formbody.Form{"event_name": "Tech Fest 2026", "venue": "Main Hall"},
		},
		{
			name: "value keeps everything after first equals",
			body: "note=a=b=c",
			want: formbody.Form{"note": "a=b=c"},
		},
		{
			name: "field without equals decodes to empty string",
			body: "event_id",
			want: formbody.Form{"event_id": ""},
		},
		{
			name: "empty body",
			body: "",
			want: formbody.Form{},
		},
		{
			name: "utf8 percent encoding",
			body: "name=%D0%98%D0%B2%D0%B0%D0%BD",
			want: formbody.Form{"name": "Иван"},
		},
		{
			name:    "malformed percent encoding fails whole decode",
			body:    "name=ok&venue=%zz",
			wantErr: true,
		},
		{
			name:    "truncated percent escape",
			body:    "name=%4",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formbody.Parse(tt.body)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestForm_Get_AbsentField(t *testing.T) {
	form, err := formbody.Parse("email=a%40b.com")
	require.NoError(t, err)

	assert.Equal(t, "a@b.com", form.Get("email"))
	assert.Equal(t, "", form.Get("password"))
}
