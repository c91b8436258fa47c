package shortcode

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Checker 判断短路径是否已被占用
type Checker interface {
	PathExists(ctx context.Context, path string) (bool, error)
}

// PoolOptions 候选池参数
type PoolOptions struct {
	Length        int
	Alphabet      string
	Size          int
	MinFill       int
	CheckInterval time.Duration
}

func (o *PoolOptions) withDefaults() {
	if o.Length <= 0 {
		o.Length = DefaultLength
	}
	if o.Alphabet == "" {
		o.Alphabet = Alphanumeric
	}
	if o.Size <= 0 {
		o.Size = 256
	}
	if o.MinFill <= 0 || o.MinFill > o.Size {
		o.MinFill = o.Size / 10
	}
	if o.CheckInterval <= 0 {
		o.CheckInterval = 5 * time.Second
	}
}

// Pool 在后台预先生成未被占用的候选短路径。
// 取出的候选在写库前仍可能被占用，调用方需重新检查。
type Pool struct {
	checker   Checker
	opts      PoolOptions
	codeChan  chan string
	mu        sync.Mutex
	isFilling bool
	stopOnce  sync.Once
	stopChan  chan struct{}
	logger    *zap.SugaredLogger
}

// NewPool 创建候选池，需要调用 Start 才会开始填充
func NewPool(checker Checker, opts PoolOptions, logger *zap.SugaredLogger) *Pool {
	opts.withDefaults()
	return &Pool{
		checker:  checker,
		opts:     opts,
		codeChan: make(chan string, opts.Size),
		stopChan: make(chan struct{}),
		logger:   logger.Named("shortcode_pool"),
	}
}

// Start 启动后台填充
func (p *Pool) Start() {
	p.logger.Info("启动短路径候选池...")
	go p.fill()
	go p.monitorAndRefill()
}

// Stop 停止后台填充，可重复调用
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		p.logger.Info("正在停止短路径候选池...")
		close(p.stopChan)
	})
}

// Len 当前池中候选数量
func (p *Pool) Len() int {
	return len(p.codeChan)
}

// Next 取出一个候选；池为空时直接现场生成，不阻塞请求
func (p *Pool) Next(ctx context.Context) (string, error) {
	select {
	case code := <-p.codeChan:
		return code, nil
	case <-ctx.Done():
		return "", ctx.Err()
	default:
		return Generate(p.opts.Length, p.opts.Alphabet)
	}
}

func (p *Pool) monitorAndRefill() {
	ticker := time.NewTicker(p.opts.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if len(p.codeChan) < p.opts.MinFill {
				p.fill()
			}
		case <-p.stopChan:
			p.logger.Info("已停止监控和补充任务。")
			return
		}
	}
}

func (p *Pool) fill() {
	p.mu.Lock()
	if p.isFilling {
		p.mu.Unlock()
		return
	}
	p.isFilling = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.isFilling = false
		p.mu.Unlock()
	}()

	p.logger.Debugf("池中剩余 %d 个候选，开始补充...", len(p.codeChan))
	for len(p.codeChan) < p.opts.Size {
		select {
		case <-p.stopChan:
			p.logger.Info("填充任务已中断。")
			return
		default:
		}

		code, err := p.unusedCandidate()
		if err != nil {
			p.logger.Errorf("生成候选短路径失败: %v", err)
			select {
			case <-time.After(100 * time.Millisecond):
			case <-p.stopChan:
				return
			}
			continue
		}
		if code == "" {
			continue
		}
		select {
		case p.codeChan <- code:
		default:
			return
		}
	}
	p.logger.Debugf("候选池已填满，现有 %d 个。", len(p.codeChan))
}

// unusedCandidate 最多尝试 10 次，全部冲突时返回空串
func (p *Pool) unusedCandidate() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	for i := 0; i < 10; i++ {
		code, err := Generate(p.opts.Length, p.opts.Alphabet)
		if err != nil {
			return "", err
		}
		exists, err := p.checker.PathExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	p.logger.Warn("已尝试10次生成候选短路径，但均存在冲突。")
	return "", nil
}
