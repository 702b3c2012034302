package linear

// Option は Ridge の設定関数
type Option func(*Ridge)

// WithFeatureNames はエラーメッセージに使う列名を設定する
func WithFeatureNames(names []string) Option {
	return func(r *Ridge) {
		r.SetFeatureNames(names)
	}
}

// WithTargetName は目的変数の名前を設定する（デフォルトは "y"）
func WithTargetName(name string) Option {
	return func(r *Ridge) {
		r.targetName = name
	}
}
