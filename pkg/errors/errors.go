// Package errors はプロジェクト全体のエラーハンドリングと警告システムを提供します。
// 行列バッファの形状・レイアウト違反を構造化されたエラー情報として表現します。
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// デフォルトのハンドラは標準エラー出力にログを出す
		log.Printf("matbuf-Warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler はライブラリ全体の警告ハンドラを設定します。
// これにより、DataConversionWarningなどのカスタム警告の処理方法を制御できます。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが利用可能な場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	// zerologが設定されている場合は優先的に使用
	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	// フォールバック: 従来のハンドラ
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// ShapeMismatchError はバッファ長が指定された形状と一致しない場合のエラーです。
// 構築時の契約違反として呼び出し元に返されます（黙って切り詰めることはありません）。
type ShapeMismatchError struct {
	Op     string
	NumRow int
	NumCol int
	Len    int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("matbuf: %s: mismatch length (%d * %d = %d, values length = %d)",
		e.Op, e.NumRow, e.NumCol, e.NumRow*e.NumCol, e.Len)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ShapeMismatchError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("nrow", e.NumRow).
		Int("ncol", e.NumCol).
		Int("length", e.Len).
		Str("type", "ShapeMismatchError")
}

// NewShapeMismatchError は新しいShapeMismatchErrorを作成し、スタックトレースを付与します。
func NewShapeMismatchError(op string, nrow, ncol, length int) error {
	err := &ShapeMismatchError{Op: op, NumRow: nrow, NumCol: ncol, Len: length}
	return errors.WithStack(err)
}

// ColumnCountMismatchError は可変幅の行入力で行ごとの列数が一致しない場合のエラーです。
type ColumnCountMismatchError struct {
	Op       string
	Expected int
	Got      int
	Row      int
}

func (e *ColumnCountMismatchError) Error() string {
	return fmt.Sprintf("matbuf: %s: mismatch column length at row %d (expected %d, got %d)",
		e.Op, e.Row, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ColumnCountMismatchError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("row", e.Row).
		Str("type", "ColumnCountMismatchError")
}

// NewColumnCountMismatchError は新しいColumnCountMismatchErrorを作成し、スタックトレースを付与します。
func NewColumnCountMismatchError(op string, expected, got, row int) error {
	err := &ColumnCountMismatchError{Op: op, Expected: expected, Got: got, Row: row}
	return errors.WithStack(err)
}

// FieldMismatchError はデータセットのフィールド長が行数と一致しない場合のエラーです。
type FieldMismatchError struct {
	Field    string
	Expected int
	Got      int
}

func (e *FieldMismatchError) Error() string {
	return fmt.Sprintf("matbuf: field %q length mismatch (expected %d, got %d)",
		e.Field, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *FieldMismatchError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("field", e.Field).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Str("type", "FieldMismatchError")
}

// NewFieldMismatchError は新しいFieldMismatchErrorを作成し、スタックトレースを付与します。
func NewFieldMismatchError(field string, expected, got int) error {
	err := &FieldMismatchError{Field: field, Expected: expected, Got: got}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	警告型
//
// ===========================================================================

// DataConversionWarning はデータの型が暗黙的に変換された場合に発生する警告です。
type DataConversionWarning struct {
	FromType string
	ToType   string
	Reason   string
}

func (w *DataConversionWarning) Error() string {
	return fmt.Sprintf("data converted from %s to %s. Reason: %s", w.FromType, w.ToType, w.Reason)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *DataConversionWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("from_type", w.FromType).
		Str("to_type", w.ToType).
		Str("reason", w.Reason).
		Str("type", "DataConversionWarning")
}

// NewDataConversionWarning は新しいDataConversionWarningを作成します。
func NewDataConversionWarning(from, to, reason string) *DataConversionWarning {
	return &DataConversionWarning{FromType: from, ToType: to, Reason: reason}
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")

	// ErrTypeMismatch はフィールドの要素型が期待と異なる場合のエラーです。
	ErrTypeMismatch = New("element type mismatch")
)
