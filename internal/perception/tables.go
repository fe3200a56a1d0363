package perception

// Static lookup tables. All read-only, process-wide.

// weekdayNames is indexed by time.Weekday (Sunday = 0).
var weekdayNames = [7]string{"周日", "周一", "周二", "周三", "周四", "周五", "周六"}

var platformDisplayNames = map[string]string{
	"mew":                    "Mew",
	"aiocqhttp":              "QQ",
	"telegram":               "Telegram",
	"discord":                "Discord",
	"weixin_official_account": "微信公众号",
	"wecom":                  "企业微信",
	"wecom_ai_bot":           "企业微信AI机器人",
	"satori":                 "Satori",
	"misskey":                "Misskey",
}

// lunarMonthNames is indexed by lunar month 1..12.
var lunarMonthNames = [13]string{"", "正月", "二月", "三月", "四月", "五月", "六月", "七月", "八月", "九月", "十月", "冬月", "腊月"}

// lunarDayNames is indexed by lunar day 1..30.
var lunarDayNames = [31]string{"",
	"初一", "初二", "初三", "初四", "初五", "初六", "初七", "初八", "初九", "初十",
	"十一", "十二", "十三", "十四", "十五", "十六", "十七", "十八", "十九", "二十",
	"廿一", "廿二", "廿三", "廿四", "廿五", "廿六", "廿七", "廿八", "廿九", "三十",
}

var heavenlyStems = [10]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}

var earthlyBranches = [12]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}

var zodiacAnimals = [12]string{"鼠", "牛", "虎", "兔", "龙", "蛇", "马", "羊", "猴", "鸡", "狗", "猪"}

// solarTerms lists the 24 terms with approximate civil dates. Deliberately
// non-astronomical: the real dates drift by a day either way across years.
var solarTerms = [24]struct {
	Month int
	Day   int
	Name  string
}{
	{1, 6, "小寒"}, {1, 20, "大寒"},
	{2, 4, "立春"}, {2, 19, "雨水"},
	{3, 6, "惊蛰"}, {3, 21, "春分"},
	{4, 5, "清明"}, {4, 20, "谷雨"},
	{5, 6, "立夏"}, {5, 21, "小满"},
	{6, 6, "芒种"}, {6, 21, "夏至"},
	{7, 7, "小暑"}, {7, 23, "大暑"},
	{8, 8, "立秋"}, {8, 23, "处暑"},
	{9, 8, "白露"}, {9, 23, "秋分"},
	{10, 8, "寒露"}, {10, 23, "霜降"},
	{11, 7, "立冬"}, {11, 22, "小雪"},
	{12, 7, "大雪"}, {12, 22, "冬至"},
}

var auspiciousPool = []string{
	"祈福", "出行", "会友", "读书", "纳财", "开市", "动笔", "扫舍",
	"沐浴", "种植", "烹饪", "理发", "立约", "搬家", "问医",
}

var inauspiciousPool = []string{
	"远行", "动土", "词讼", "借贷", "熬夜", "争执", "冒险", "赌博", "暴食", "拖延",
}
