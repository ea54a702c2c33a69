// Package main provides localization for the ugoira2mp4 CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		"Convert an ugoira ZIP + manifest into an H.264 MP4.": "ugoiraのZIPとマニフェストをH.264のMP4に変換します。",
		"Report track/sample metadata for a produced MP4.":    "生成済みMP4のトラック・サンプル情報を表示します。",
		"Show version information.":                           "バージョン情報を表示します。",

		"Path to the ugoira ZIP archive.":                       "ugoiraのZIPアーカイブのパス。",
		"Path to write the H.264 MP4 to.":                       "出力するH.264 MP4のパス。",
		"Path to the JSON manifest of {file, delay} records.":   "{file, delay}を含むJSONマニフェストのパス。",
		"Ceiling on the output frame rate.":                     "出力フレームレートの上限。",
		"Container metadata as KEY=VALUE, repeatable.":          "KEY=VALUE形式のコンテナメタデータ（複数指定可）。",
		"Force 4:2:0 planar 8-bit YUV output regardless of input.": "入力に関わらず4:2:0 8bit YUV出力を強制します。",
		"libx264 CRF, 0-51 (default 18).":                       "libx264のCRF値、0-51（デフォルト18）。",
		"libx264 preset (default slow).":                        "libx264のプリセット（デフォルトslow）。",
		"libx264 level.":                                        "libx264のレベル。",
		"libx264 profile.":                                      "libx264のプロファイル。",
		"Optional YAML defaults file.":                          "任意のYAMLデフォルト設定ファイル。",
		"Log level.":                                            "ログレベル。",
		"Suppress all log output.":                              "すべてのログ出力を抑制します。",
		"Path to an MP4 file to report on.":                     "情報を表示するMP4ファイルのパス。",

		"Converting %s to %s":               "%s を %s に変換しています",
		"Output saved to %s":                "%s に出力を保存しました",
		"Interrupted, shutting down...":     "中断されました。終了処理中...",
		"ugoira2mp4 version %s":             "ugoira2mp4 バージョン %s",
	})
}
