package container

import (
	"fmt"
	"log"
)

// ListNode 双向链表中的节点
// 功能：表示双向链表中的一个节点，包含值和额外信息
// 说明：支持泛型，可以存储任意类型的值和额外信息
type ListNode[T any, E any] struct {
	parent     *List[T, E]     // 所属链表
	prev, next *ListNode[T, E] // 前驱和后继节点
	Value      T               // 主要值
	Extra      E               // 额外信息
}

// String 获取节点的字符串表示
func (n *ListNode[T, E]) String() string {
	return fmt.Sprintf("Node{Value:%+v, Extra:%+v}", n.Value, n.Extra)
}

// insertAfter 在节点后插入新节点
// 参数：add-要插入的新节点
func (n *ListNode[T, E]) insertAfter(add *ListNode[T, E]) {
	if add.parent != nil {
		log.Panic("insert node who already in list")
	}
	add.parent = n.parent
	add.prev = n
	add.next = n.next
	n.next = add
	if add.next != nil {
		add.next.prev = add
	} else {
		add.parent.tail = add
	}
	n.parent.length++
}

// List 双向链表
// 功能：实现一个通用的双向链表数据结构，头部出队、尾部入队时即为严格FIFO队列
// 说明：长度计数随插入删除维护，Len为O(1)
type List[T any, E any] struct {
	ID         string          // 链表标识符
	head, tail *ListNode[T, E] // 头尾节点指针
	length     int             // 链表长度
}

func (l *List[T, E]) String() string {
	return fmt.Sprintf("List{ID:%v, Len:%d}", l.ID, l.length)
}

// Values 获取双向链表中所有节点的值（从头到尾）
func (l *List[T, E]) Values() []T {
	values := make([]T, l.length)
	for i, node := 0, l.head; node != nil; i, node = i+1, node.next {
		values[i] = node.Value
	}
	return values
}

// Len 获取双向链表长度
func (l *List[T, E]) Len() int {
	return l.length
}

// PushBack 向链表尾部插入节点
// 功能：在链表尾部添加一个新节点
// 参数：add-要插入的新节点
// 算法说明：
// 1. 检查新节点是否已经在其他链表中
// 2. 如果链表为空，直接设置为头尾节点
// 3. 如果链表不为空，在尾节点后插入新节点
func (l *List[T, E]) PushBack(add *ListNode[T, E]) {
	if add.parent != nil {
		log.Panic("push back node who already in list")
	}
	add.next = nil
	add.prev = nil
	if l.tail == nil {
		add.parent = l
		l.head = add
		l.tail = add
		l.length++
	} else {
		// length++和add.parent在insertAfter中处理
		l.tail.insertAfter(add)
	}
}

// PopFront 移除并返回链表头部节点
// 返回：头节点，链表为空时返回nil
func (l *List[T, E]) PopFront() *ListNode[T, E] {
	node := l.head
	if node == nil {
		return nil
	}
	l.Remove(node)
	return node
}

// Remove 从链表中移除节点
// 功能：从链表中删除指定的节点
// 参数：node-要删除的节点
// 算法说明：
// 1. 检查节点是否属于当前链表
// 2. 更新前驱节点的后继指针与后继节点的前驱指针
// 3. 如果删除的是头/尾节点，更新头/尾指针
// 4. 清空被删除节点的指针并减少链表长度计数
func (l *List[T, E]) Remove(node *ListNode[T, E]) {
	if node.parent != l {
		log.Panic("remove node from wrong list")
	}
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}
	node.prev = nil
	node.next = nil
	node.parent = nil
	l.length--
}

// First 获取链表头部节点
func (l *List[T, E]) First() *ListNode[T, E] {
	return l.head
}

