package cascada

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Classifier derives the class for one fragment. Implementations must be
// deterministic for equal inputs over their lifetime, and must never produce
// the same class for two distinct stylers. A Classifier instance belongs to
// exactly one Context; flavors are never mixed within a Context.
type Classifier interface {
	Classify(owner *Styler, label string, used []Param, params Params) (string, error)
}

// identityTable assigns each distinct styler a short numeric id on first
// sight, in encounter order. Ids are never reused for the table's lifetime,
// even if a styler is later unreachable; the table is the only thing keeping
// the association, so ownership stays with the classifier (and therefore the
// Context) rather than with ambient package state.
type identityTable struct {
	ids  map[*Styler]int
	next int
}

func newIdentityTable() *identityTable {
	return &identityTable{ids: make(map[*Styler]int)}
}

func (t *identityTable) id(owner *Styler) int {
	if id, ok := t.ids[owner]; ok {
		return id
	}
	id := t.next
	t.next++
	t.ids[owner] = id
	return id
}

// sortedParams returns used ordered by name. Call sites do not guarantee a
// stable parameter order across equivalent invocations, so the class must not
// depend on it.
func sortedParams(used []Param) []Param {
	out := make([]Param, len(used))
	copy(out, used)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// lookalikes maps ASCII punctuation that would otherwise be escaped into
// visually similar runes above the identifier threshold, keeping readable
// classes legible after encoding.
var lookalikes = strings.NewReplacer(
	" ", "␣", // ␣
	".", "·", // ·
	",", "‚", // ‚
	":", "꞉", // ꞉
	";", "；", // ；
	"#", "＃", // ＃
	"%", "﹪", // ﹪
	"(", "⟮", // ⟮
	")", "⟯", // ⟯
	"/", "⁄", // ⁄
	"!", "ǃ", // ǃ
)

// ReadableClassifier is the default debug-friendly flavor: the class carries
// the styler's short id, the label, and every used parameter name and value
// in full.
type ReadableClassifier struct {
	table *identityTable
}

// NewReadableClassifier creates a fresh readable classifier.
func NewReadableClassifier() *ReadableClassifier {
	return &ReadableClassifier{table: newIdentityTable()}
}

// Classify implements Classifier.
func (c *ReadableClassifier) Classify(owner *Styler, label string, used []Param, params Params) (string, error) {
	var b strings.Builder
	b.WriteString("c")
	b.WriteString(strconv.Itoa(c.table.id(owner)))
	b.WriteString("_")
	b.WriteString(lookalikes.Replace(label))
	for _, p := range sortedParams(used) {
		b.WriteString("_")
		b.WriteString(lookalikes.Replace(p.Name))
		b.WriteString("-")
		b.WriteString(lookalikes.Replace(p.Value))
	}
	return b.String(), nil
}

// CompactClassifier trades readability for size: the class is the styler's
// short id plus a truncated content hash of the label and sorted parameters.
// Uniqueness across stylers is guaranteed by the id prefix; uniqueness across
// parameter sets is probabilistic but overwhelming.
type CompactClassifier struct {
	table *identityTable
}

// NewCompactClassifier creates a fresh compact classifier.
func NewCompactClassifier() *CompactClassifier {
	return &CompactClassifier{table: newIdentityTable()}
}

// Classify implements Classifier.
func (c *CompactClassifier) Classify(owner *Styler, label string, used []Param, params Params) (string, error) {
	h := sha256.New()
	h.Write([]byte(label))
	for _, p := range sortedParams(used) {
		h.Write([]byte{0})
		h.Write([]byte(p.Name))
		h.Write([]byte{0})
		h.Write([]byte(p.Value))
	}
	digest := hex.EncodeToString(h.Sum(nil))[:8]
	return fmt.Sprintf("c%d-%s", c.table.id(owner), digest), nil
}

// InterningClassifier wraps another classifier and replaces each distinct
// full class with a short surrogate ("f0", "f1", …) assigned on first
// computation and returned on every call, the first included. The table is
// never evicted for the classifier's lifetime; memory is traded for much
// shorter output when classes are generated at scale.
type InterningClassifier struct {
	inner      Classifier
	surrogates map[string]string
	next       int
}

// Intern wraps cl with surrogate interning.
func Intern(cl Classifier) *InterningClassifier {
	return &InterningClassifier{inner: cl, surrogates: make(map[string]string)}
}

// Classify implements Classifier.
func (c *InterningClassifier) Classify(owner *Styler, label string, used []Param, params Params) (string, error) {
	full, err := c.inner.Classify(owner, label, used, params)
	if err != nil {
		return "", err
	}
	if s, ok := c.surrogates[full]; ok {
		return s, nil
	}
	s := "f" + strconv.Itoa(c.next)
	c.next++
	c.surrogates[full] = s
	return s, nil
}

// checkParams rejects parameter records carrying values that cannot be
// embedded in an identifier (functions are unwrapped first; nested maps,
// slices and the like are refused outright).
func checkParams(params Params) error {
	for name, raw := range params {
		resolved, err := resolveValue(raw)
		if err != nil {
			return err
		}
		if _, ok := formatValue(resolved); !ok {
			return fmt.Errorf("%w: parameter %q is %T", ErrBadParameterValue, name, resolved)
		}
	}
	return nil
}
