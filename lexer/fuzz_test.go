package lexer

import "testing"

// FuzzTokenize 词法器对任意字节要么成功要么返回类型化错误，
// 不 panic 不死循环；成功时恰好以一个 T_EOF 结束
func FuzzTokenize(f *testing.F) {
	f.Add([]byte(`<?php echo "Hello, World!";`))
	f.Add([]byte(`<?php $x = 1 + 2 * 3;`))
	f.Add([]byte("<?php $s = \"a{$b[0]}c\";"))
	f.Add([]byte("<?php $h = <<<EOT\nbody $v\nEOT;"))
	f.Add([]byte("plain html <?p not a tag"))
	f.Add([]byte("#!/usr/bin/php\n<?php ?>"))

	f.Fuzz(func(t *testing.T, data []byte) {
		tokens, err := Tokenize(data)
		if err != nil {
			return
		}
		if len(tokens) == 0 {
			t.Fatal("successful tokenize returned no tokens")
		}
		for i, tok := range tokens[:len(tokens)-1] {
			if tok.Type == T_EOF {
				t.Fatalf("EOF at %d before end of stream", i)
			}
			if tok.Span.Start >= tok.Span.End {
				t.Fatalf("token %d (%s) has empty span", i, tok.Type)
			}
		}
		if tokens[len(tokens)-1].Type != T_EOF {
			t.Fatal("token stream does not end with T_EOF")
		}
	})
}
