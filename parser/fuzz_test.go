package parser

import "testing"

// FuzzParseSource 解析任意输入要么得到 AST 要么得到类型化错误，绝不 panic
func FuzzParseSource(f *testing.F) {
	f.Add([]byte(`<?php echo 1 + 2;`))
	f.Add([]byte(`<?php class C extends B { public function m(): int { return 1; } }`))
	f.Add([]byte(`<?php $r = match ($x) { 1 => "a", default => "b" };`))
	f.Add([]byte(`<?php if ($a): ?>html<?php endif;`))
	f.Add([]byte(`<?php try { f(); } finally { g(); }`))

	f.Fuzz(func(t *testing.T, data []byte) {
		program, err := ParseSource(data)
		if err == nil && program == nil {
			t.Fatal("nil program without error")
		}
	})
}
