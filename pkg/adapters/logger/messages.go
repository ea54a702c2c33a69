package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		"Opening archive %s":              "アーカイブ %s を開いています",
		"Decoded %s into a %dx%d picture": "%s を %dx%d の画像にデコードしました",
		"Opening encoder for %dx%d":       "%dx%d 用のエンコーダーを開いています",
		"Encoded source frame %d/%d (%s)": "元フレーム %d/%d (%s) をエンコードしました",
		"Conversion completed":            "変換が完了しました",
	})
}
