package transformation

import "testing"

func TestStringRendersChain(t *testing.T) {
	cases := []struct {
		name string
		wire Wire
		want string
	}{
		{"empty", nil, ""},
		{"fit", Wire{{"crop": "fit", "width": 200, "height": 200}}, "c_fit,w_200,h_200"},
		{
			"chain",
			Wire{
				{"crop": "crop", "x": 10, "y": 10, "width": 300, "height": 200},
				{"crop": "fill", "width": 100, "height": 100},
				{"quality": "auto:good"},
				{"fetch_format": "webp"},
			},
			"c_crop,w_300,h_200,x_10,y_10/c_fill,w_100,h_100/q_auto:good/f_webp",
		},
		{"unknown keys sorted last", Wire{{"zeta": 1, "alpha": "a", "gravity": "face"}}, "g_face,alpha_a,zeta_1"},
		{"empty fragment skipped", Wire{{}, {"effect": "sepia"}}, "e_sepia"},
		{"float", Wire{{"start_offset": 2.5}}, "so_2.5"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := String(tc.wire); got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}
