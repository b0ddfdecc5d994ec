package templexp

import (
	"fmt"
	"os"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════
// 环境快照
// ═══════════════════════════════════════════════════════════════════════════

// Environ 生成当前进程环境变量快照。
func Environ() map[string]string {
	vars := make(map[string]string)
	for _, kv := range os.Environ() {
		if key, val, ok := strings.Cut(kv, "="); ok {
			vars[key] = val
		}
	}

	return vars
}

// scope 是一次展开过程的变量视图。
//
// ":=" 的赋值只写入 assigned，不回写调用方传入的快照。
type scope struct {
	env      map[string]string
	assigned map[string]string
}

func (s *scope) lookup(name string) (string, bool) {
	if val, ok := s.assigned[name]; ok {
		return val, true
	}
	val, ok := s.env[name]

	return val, ok
}

func (s *scope) assign(name, val string) {
	if s.assigned == nil {
		s.assigned = make(map[string]string)
	}
	s.assigned[name] = val
}

// ═══════════════════════════════════════════════════════════════════════════
// Shell Parameter Expansion
// ═══════════════════════════════════════════════════════════════════════════

func isNameStart(ch byte) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') || ch == '_'
}

func isNameChar(ch byte) bool {
	return isNameStart(ch) || (ch >= '0' && ch <= '9')
}

// splitParameter 把 "NAME:-word" 拆成 name / op / word。
func splitParameter(expr string) (name, op, word string, ok bool) {
	if expr == "" || !isNameStart(expr[0]) {
		return "", "", "", false
	}

	i := 1
	for i < len(expr) && isNameChar(expr[i]) {
		i++
	}
	name, rest := expr[:i], expr[i:]
	if rest == "" {
		return name, "", "", true
	}

	if len(rest) >= 2 && rest[0] == ':' && strings.IndexByte("-+?=", rest[1]) >= 0 {
		return name, rest[:2], rest[2:], true
	}
	if strings.IndexByte("-+?=", rest[0]) >= 0 {
		return name, rest[:1], rest[1:], true
	}

	return "", "", "", false
}

func requiredError(name, word string) error {
	if word == "" {
		return fmt.Errorf("templexp: %s: parameter null or not set", name)
	}

	return fmt.Errorf("templexp: %s: %s", name, word)
}

func (s *scope) word(word string) (string, error) {
	if !strings.Contains(word, "${") {
		return word, nil
	}

	return s.expand(word)
}

// evaluate 计算单个 ${...} 表达式；ok=false 表示无法识别，原样保留。
func (s *scope) evaluate(expr string) (string, bool, error) {
	name, op, word, ok := splitParameter(expr)
	if !ok {
		return "", false, nil
	}

	val, isSet := s.lookup(name)
	// 带冒号的操作符把空值视为未设置
	missing := !isSet
	if strings.HasPrefix(op, ":") {
		missing = !isSet || val == ""
	}

	switch strings.TrimPrefix(op, ":") {
	case "":
		return val, true, nil
	case "-":
		if missing {
			out, err := s.word(word)
			return out, err == nil, err
		}
		return val, true, nil
	case "+":
		if missing {
			return "", true, nil
		}
		out, err := s.word(word)
		return out, err == nil, err
	case "?":
		if missing {
			return "", false, requiredError(name, word)
		}
		return val, true, nil
	case "=":
		if missing {
			out, err := s.word(word)
			if err != nil {
				return "", false, err
			}
			s.assign(name, out)
			return out, true, nil
		}
		return val, true, nil
	}

	return "", false, nil
}

func (s *scope) expand(text string) (string, error) {
	var buf strings.Builder
	buf.Grow(len(text))

	for i := 0; i < len(text); {
		if text[i] != '$' || i+1 >= len(text) {
			buf.WriteByte(text[i])
			i++
			continue
		}

		switch text[i+1] {
		case '$':
			buf.WriteByte('$')
			i += 2
			continue
		case '{':
		default:
			buf.WriteByte('$')
			i++
			continue
		}

		end := matchingBrace(text, i+2)
		if end == -1 {
			buf.WriteByte('$')
			i++
			continue
		}

		out, ok, err := s.evaluate(text[i+2 : end])
		if err != nil {
			return "", err
		}
		if ok {
			buf.WriteString(out)
		} else {
			buf.WriteString(text[i : end+1])
		}
		i = end + 1
	}

	return buf.String(), nil
}

func matchingBrace(text string, start int) int {
	depth := 0
	for i := start; i < len(text); i++ {
		switch {
		case text[i] == '$' && i+1 < len(text) && text[i+1] == '{':
			depth++
			i++
		case text[i] == '}':
			if depth == 0 {
				return i
			}
			depth--
		}
	}

	return -1
}

// ═══════════════════════════════════════════════════════════════════════════
// 对外入口
// ═══════════════════════════════════════════════════════════════════════════

// ExpandTemplate 使用当前进程环境对输入字符串执行 Shell 参数展开。
//
// 等价于 Expand(text, Environ())。
func ExpandTemplate(text string) (string, error) {
	return Expand(text, Environ())
}

// Expand 使用给定的环境快照对输入字符串执行 Shell 参数展开。
//
// 支持语法：
//   - ${VAR} - 变量替换
//   - ${VAR:-default} / ${VAR-default} - fallback
//   - ${VAR:+alt} / ${VAR+alt} - 替代值
//   - ${VAR:?msg} / ${VAR?msg} - 必填校验
//   - ${VAR:=default} / ${VAR=default} - 赋值（仅作用于当前展开）
//
// env 不会被修改；仅在必填校验失败时返回 error。
func Expand(text string, env map[string]string) (string, error) {
	s := &scope{env: env}
	return s.expand(text)
}

// ExpandValues 递归展开解码后配置值中的全部字符串。
//
// map 与 slice 会被复制，输入保持不变；":=" 的赋值在整棵树内共享。
func ExpandValues(val any, env map[string]string) (any, error) {
	s := &scope{env: env}
	return s.values(val)
}

func (s *scope) values(val any) (any, error) {
	switch typed := val.(type) {
	case string:
		return s.word(typed)
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			expanded, err := s.values(item)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			out[key] = expanded
		}
		return out, nil
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			expanded, err := s.values(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = expanded
		}
		return out, nil
	default:
		return val, nil
	}
}
