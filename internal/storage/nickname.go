package storage

import "math/rand/v2"

// 昵称词库
var (
	adjectives = []string{
		"勇敢的", "聪明的", "快乐的", "神秘的", "酷炫的",
		"优雅的", "可爱的", "威武的", "沉稳的", "活泼的",
		"机智的", "潇洒的", "温柔的", "霸气的", "淡定的",
	}

	nouns = []string{
		"斑马", "羚羊", "猎豹", "犀牛", "河马",
		"长颈鹿", "狮子", "猫鼬", "鸵鸟", "大象",
		"企鹅", "海豚", "狐狸", "刺猬", "松鼠",
	}
)

// GenerateNickname 没有保存昵称时生成一个随机昵称
func GenerateNickname(rng *rand.Rand) string {
	return adjectives[rng.IntN(len(adjectives))] + nouns[rng.IntN(len(nouns))]
}
