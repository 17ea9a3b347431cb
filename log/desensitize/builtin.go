package desensitize

var (
	// BearerRule Authorization 头中的访问令牌 (Bearer sq0atp-xxx -> Bearer ******)
	BearerRule = MustNewContentRule(
		"bearer",
		`(?i)(bearer\s+)[\w.~+/=-]+`,
		"${1}******",
	)

	// EmailRule 邮箱脱敏规则 (user@example.com -> u***r@e***.com)
	EmailRule = MustNewContentRule(
		"email",
		`\b([A-Za-z0-9])[A-Za-z0-9._%+-]*([A-Za-z0-9])@([A-Za-z0-9])[A-Za-z0-9.-]*\.([A-Za-z]{2,})\b`,
		"$1***$2@$3***.$4",
	)

	// AccessTokenRule access_token 字段
	AccessTokenRule = MustNewFieldRule("access_token", "access_token", "******")

	// CardNonceRule card_nonce 字段，nonce 可以直接用于扣款
	CardNonceRule = MustNewFieldRule("card_nonce", "card_nonce", "******")

	// V1TokenRule / V2TokenRule 配置中的访问令牌字段
	V1TokenRule = MustNewFieldRule("v1_token", "v1_token", "******")
	V2TokenRule = MustNewFieldRule("v2_token", "v2_token", "******")
)

// BuiltinRules 返回所有内置规则
func BuiltinRules() []Rule {
	return []Rule{
		BearerRule,
		EmailRule,
		AccessTokenRule,
		CardNonceRule,
		V1TokenRule,
		V2TokenRule,
	}
}

// Builtin 返回已加载全部内置规则的钩子
func Builtin() *Hook {
	h := NewHook()
	h.AddRules(BuiltinRules()...)
	return h
}
